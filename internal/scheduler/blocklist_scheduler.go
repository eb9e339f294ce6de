package scheduler

import (
	"context"
	"time"

	"github.com/mkim/storehub-backend/internal/token"
	"github.com/mkim/storehub-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// BlocklistScheduler periodically sweeps expired entries out of the token
// blocklist so memory stays bounded by the number of live revocations.
type BlocklistScheduler struct {
	cron      *cron.Cron
	blocklist token.Blocklist
	spec      string
}

func NewBlocklistScheduler(blocklist token.Blocklist, spec string) *BlocklistScheduler {
	if spec == "" {
		spec = "@hourly"
	}
	return &BlocklistScheduler{
		cron:      cron.New(),
		blocklist: blocklist,
		spec:      spec,
	}
}

func (s *BlocklistScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.prune)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("Blocklist prune scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *BlocklistScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Blocklist prune scheduler stopped", nil)
}

func (s *BlocklistScheduler) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.blocklist.Prune(ctx)
	if err != nil {
		logger.Error("Blocklist prune failed", err, nil)
		return
	}

	logger.Info("Blocklist pruned", map[string]interface{}{
		"removed": removed,
	})
}
