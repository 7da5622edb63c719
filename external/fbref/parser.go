package fbref

import (
	"iter"

	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/matchlog"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
	"github.com/riskibarqy/fbref-crawler/internal/platform/htmltable"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
)

// Parser reads fbref stats tables. It holds no per-call state, so the crawl
// can run every table kind of one page concurrently.
type Parser struct {
	logger *logging.Logger
}

func NewParser(logger *logging.Logger) *Parser {
	if logger == nil {
		logger = logging.Default()
	}
	return &Parser{logger: logger.Named("parser")}
}

func (p *Parser) Players(html, location string) iter.Seq[player.Player] {
	return htmltable.Extract(html, location, PlayerSchema, p.logger)
}

func (p *Parser) Goalkeeping(html, location string) iter.Seq[goalkeeping.Goalkeeping] {
	return htmltable.Extract(html, location, GoalkeepingSchema, p.logger)
}

func (p *Parser) Shooting(html, location string) iter.Seq[shooting.Shooting] {
	return htmltable.Extract(html, location, ShootingSchema, p.logger)
}

func (p *Parser) MatchLogs(html, location string) iter.Seq[matchlog.MatchLog] {
	return htmltable.Extract(html, location, MatchLogSchema, p.logger)
}

func (p *Parser) Squads(html, location string) iter.Seq[club.SquadStats] {
	return htmltable.Extract(html, location, SquadSchema, p.logger)
}
