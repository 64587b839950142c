package unsigned

import (
	"github.com/samber/mo"
)

/*//////////////////////////////////////////////////////////////
                             ORDER
//////////////////////////////////////////////////////////////*/

// CreateOrderOption is a functional option for Order operations
type CreateOrderOption func(*createOrderConfig)

type createOrderConfig struct {
	builder  mo.Option[BuilderInfo]
	grouping mo.Option[OrderGrouping]
}

// WithOrderBuilderInfo sets the builder info for the order
func WithOrderBuilderInfo(builder BuilderInfo) CreateOrderOption {
	return func(cfg *createOrderConfig) {
		cfg.builder = mo.Some(builder)
	}
}

func WithOrderGrouping(grouping OrderGrouping) CreateOrderOption {
	return func(cfg *createOrderConfig) {
		cfg.grouping = mo.Some(grouping)
	}
}
