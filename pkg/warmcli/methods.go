package warmcli

import (
	"context"
	"time"

	"github.com/prewarm/prewarm/common"
)

// GetVersion returns the daemon's version information.
func (c *Client) GetVersion(ctx context.Context) (*common.VersionResult, error) {
	return invoke[common.VersionResult](ctx, c, common.MethodGetVersion, nil)
}

// Trigger feeds the daemon's warm trigger gate and returns the resulting
// state. A dropped or queued trigger is not an error; inspect the returned
// status to see what happened.
func (c *Client) Trigger(ctx context.Context) (*common.StatusResult, error) {
	return invoke[common.StatusResult](ctx, c, common.MethodWarmingTrigger, nil)
}

// Status returns a snapshot of the daemon's warming state.
func (c *Client) Status(ctx context.Context) (*common.StatusResult, error) {
	return invoke[common.StatusResult](ctx, c, common.MethodWarmingStatus, nil)
}

// Freeze suppresses all warming activity until Reset is called. Use it
// while a real inference request is in flight.
func (c *Client) Freeze(ctx context.Context) error {
	_, err := invoke[common.EmptyResult](ctx, c, common.MethodWarmingFreeze, nil)
	return err
}

// Reset lifts a freeze and restarts the cooldown window from now.
func (c *Client) Reset(ctx context.Context) error {
	_, err := invoke[common.EmptyResult](ctx, c, common.MethodWarmingReset, nil)
	return err
}

// Configure merges a partial configuration update into the daemon's
// warming scheduler and returns the effective configuration.
func (c *Client) Configure(ctx context.Context, p *common.ConfigureParams) (*common.ConfigResult, error) {
	if p == nil {
		p = &common.ConfigureParams{}
	}
	return invoke[common.ConfigResult](ctx, c, common.MethodWarmingConfigure, p)
}

// AddSchedule arms a recurring warm trigger from a cron expression.
func (c *Client) AddSchedule(ctx context.Context, name, cron string) error {
	_, err := invoke[common.EmptyResult](ctx, c, common.MethodScheduleAdd, &common.ScheduleAddParams{
		Name: name,
		Cron: cron,
	})
	return err
}

// AddScheduleAt arms a one-shot warm trigger that fires once at the
// given time and is not re-armed.
func (c *Client) AddScheduleAt(ctx context.Context, name string, at time.Time) error {
	_, err := invoke[common.EmptyResult](ctx, c, common.MethodScheduleAdd, &common.ScheduleAddParams{
		Name: name,
		At:   at.Format(time.RFC3339),
	})
	return err
}

// RemoveSchedule disarms a previously added warm schedule by name.
func (c *Client) RemoveSchedule(ctx context.Context, name string) error {
	_, err := invoke[common.EmptyResult](ctx, c, common.MethodScheduleRemove, &common.ScheduleNameParam{
		Name: name,
	})
	return err
}

// ListSchedules returns the currently armed warm schedules.
func (c *Client) ListSchedules(ctx context.Context) (*common.ScheduleListResult, error) {
	return invoke[common.ScheduleListResult](ctx, c, common.MethodScheduleList, nil)
}
