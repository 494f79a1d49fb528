package main

// NOTE: change version from here
const VERSION = "v0.1.0"
