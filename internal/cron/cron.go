package cron

import (
	"context"
	"time"

	"shiftboard/config"
	"shiftboard/internal/core"
	"shiftboard/internal/service"
	"shiftboard/internal/telemetry"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

// 單次排程工作的上限時間
const jobTimeout = 30 * time.Second

type Cron struct {
	logger       *zap.Logger
	config       *config.Configuration
	trace        *telemetry.Trace
	server       *cron.Cron
	shiftService *service.ShiftService
}

// NewCron .
func NewCron(logger *zap.Logger, config *config.Configuration, trace *telemetry.Trace, shiftService *service.ShiftService) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	return &Cron{
		logger:       logger,
		config:       config,
		trace:        trace,
		server:       server,
		shiftService: shiftService,
	}
}

func (c *Cron) Run() error {
	if !c.config.Cron.Enabled {
		c.logger.Info("cron disabled")
		return nil
	}
	if _, err := c.server.AddFunc(c.config.Cron.ShiftCompletionSpec, c.completePastShifts); err != nil {
		return err
	}

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	// 等待執行中的工作結束，或 ctx 到期
	select {
	case <-c.server.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (c *Cron) completePastShifts() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	ctx, _, end := c.trace.WithSpan(ctx, string(core.SpanCronJob))
	affected, err := c.shiftService.CompletePastShifts(ctx)
	end(err)
	if err != nil {
		c.logger.Error("cron complete past shifts failed", zap.Error(err))
		return
	}
	if affected > 0 {
		c.logger.Info("cron completed past shifts", zap.Int64("affected", affected))
	}
}
