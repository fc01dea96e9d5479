package temporal

import (
	"context"
	"time"
	// Zone names must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/grindlemire/graft"
	"go.trai.ch/nourish/internal/adapters/config"
	"go.trai.ch/nourish/internal/adapters/logger"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the codec Graft node.
const NodeID graft.ID = "core.temporal"

func init() {
	graft.Register(graft.Node[*Codec]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ValuesNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Codec, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loc, err := LoadLocation(cfg.Timezone)
			if err != nil {
				return nil, err
			}
			return New(loc, log), nil
		},
	})
}

// LoadLocation resolves an IANA zone name. "" and "Local" select the host zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "unknown timezone"), "timezone", name)
	}
	return loc, nil
}
