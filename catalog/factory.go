package catalog

import (
	"context"
	"fmt"

	ddbcatalog "github.com/TFMV/dynacat/catalog/dynamodb"
	"github.com/TFMV/dynacat/config"
	icebergcatalog "github.com/apache/iceberg-go/catalog"
	"github.com/apache/iceberg-go/table"
)

// Interface defines the common surface of catalog implementations
type Interface interface {
	Name() string
	CatalogType() icebergcatalog.Type
	DefaultWarehouseLocation(ctx context.Context, identifier table.Identifier) (string, error)
	Close() error
}

// NewCatalog creates a new catalog based on the configuration type. The
// DynamoDB client is constructed by the caller so it can carry whatever
// credential and endpoint setup the environment needs.
func NewCatalog(cfg *config.Config, client ddbcatalog.ItemGetter) (Interface, error) {
	switch cfg.Catalog.Type {
	case "dynamodb":
		return ddbcatalog.NewCatalog(cfg, client)
	default:
		return nil, fmt.Errorf("unsupported catalog type: %s", cfg.Catalog.Type)
	}
}
