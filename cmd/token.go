package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/prewarm/prewarm/cmd/common"
	"github.com/prewarm/prewarm/pkg/credman"
)

func tokenSet(ctx *cli.Context) error {
	token := ctx.Args().First()
	if token == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("missing required argument: <api-token>"))
	}
	if err := credman.NewTokenStore().SetToken(token); err != nil {
		common.PrintRuntimeErr(ctx, "token", "set", err)
		return nil
	}
	fmt.Println("API token stored in the system keyring.")
	return nil
}

func tokenDelete(ctx *cli.Context) error {
	if err := credman.NewTokenStore().DeleteToken(); err != nil {
		common.PrintRuntimeErr(ctx, "token", "delete", err)
		return nil
	}
	fmt.Println("API token removed from the system keyring.")
	return nil
}
