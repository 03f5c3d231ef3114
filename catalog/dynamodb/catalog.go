package dynamodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/TFMV/dynacat/config"
	"github.com/apache/iceberg-go/catalog"
	"github.com/apache/iceberg-go/table"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const (
	// DefaultMetadataTableName is used when no metadata table is configured
	DefaultMetadataTableName = "iceberg"

	// PropertyDefaultLocation is the namespace property holding an explicit
	// base location that overrides the warehouse-derived path
	PropertyDefaultLocation = "location"

	// Attribute names of the metadata table's key schema
	colIdentifier = "identifier"
	colNamespace  = "namespace"

	// Value of the identifier attribute for namespace rows
	namespaceIdentifier = "NAMESPACE"

	propertyColPrefix = "p."
)

// ItemGetter is the narrow slice of the DynamoDB client the catalog needs.
// The full *dynamodb.Client satisfies it; tests substitute an in-memory fake.
type ItemGetter interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Catalog resolves Iceberg table locations from namespace metadata stored in
// a DynamoDB table
type Catalog struct {
	name            string
	metadataTable   string
	client          ItemGetter
	warehouse       string
	uniqueLocations bool
	newSuffix       func() string
}

// NewCatalog creates a new DynamoDB-backed catalog using the given client
func NewCatalog(cfg *config.Config, client ItemGetter) (*Catalog, error) {
	if cfg.Catalog.DynamoDB == nil {
		return nil, fmt.Errorf("DynamoDB catalog configuration is required")
	}
	if client == nil {
		return nil, fmt.Errorf("DynamoDB client is required")
	}

	metadataTable := cfg.Catalog.DynamoDB.Table
	if metadataTable == "" {
		metadataTable = DefaultMetadataTableName
	}

	return &Catalog{
		name:          cfg.Name,
		metadataTable: metadataTable,
		client:        client,
		// Locations are joined with exactly one separator, so the root is
		// normalized once here
		warehouse:       strings.TrimRight(cfg.Catalog.DynamoDB.Warehouse, "/"),
		uniqueLocations: cfg.Catalog.DynamoDB.UniqueTableLocations,
		newSuffix:       newLocationSuffix,
	}, nil
}

// CatalogType returns the catalog type
func (c *Catalog) CatalogType() catalog.Type {
	return catalog.DynamoDB
}

// Name returns the catalog name
func (c *Catalog) Name() string {
	return c.name
}

// Close releases resources held by the catalog. The DynamoDB client is
// owned by the caller, so there is nothing to release here.
func (c *Catalog) Close() error {
	return nil
}

// DefaultWarehouseLocation computes the storage location for a table that was
// created without an explicit location.
//
// The namespace's stored "location" property, when present, is used verbatim
// as the base path. Otherwise the base is <warehouse>/<namespace>.db. The
// table name is appended, plus a random 32-character suffix when the catalog
// is configured for unique table locations.
func (c *Catalog) DefaultWarehouseLocation(ctx context.Context, identifier table.Identifier) (string, error) {
	namespace := catalog.NamespaceFromIdent(identifier)
	tableName := catalog.TableNameFromIdent(identifier)

	nsLocation, err := c.namespaceLocation(ctx, namespace)
	if err != nil {
		return "", err
	}

	location := nsLocation + "/" + tableName
	if c.uniqueLocations {
		location += "-" + c.newSuffix()
	}

	return location, nil
}

// namespaceLocation resolves the base location for a namespace: its stored
// location override if one is set, or the warehouse-derived default.
func (c *Catalog) namespaceLocation(ctx context.Context, namespace table.Identifier) (string, error) {
	resp, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.metadataTable),
		ConsistentRead: aws.Bool(true),
		Key:            namespacePrimaryKey(namespace),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read metadata for namespace %s: %w", namespaceToString(namespace), err)
	}

	// A nil item means no row at all: the namespace was never created. An
	// empty item is an existing namespace with no properties set.
	if resp.Item == nil {
		return "", fmt.Errorf("cannot find default warehouse location: namespace %s does not exist: %w",
			namespaceToString(namespace), catalog.ErrNoSuchNamespace)
	}

	if location := itemString(resp.Item, ToPropertyCol(PropertyDefaultLocation)); location != "" {
		// Override values are caller-controlled and used exactly as stored
		return location, nil
	}

	return c.warehouse + "/" + namespaceToString(namespace) + ".db", nil
}

// ToPropertyCol maps a logical namespace property name to the attribute name
// used in the metadata table
func ToPropertyCol(property string) string {
	return propertyColPrefix + property
}

// IsPropertyCol reports whether an attribute name holds a namespace property
func IsPropertyCol(col string) bool {
	return strings.HasPrefix(col, propertyColPrefix)
}

// ToPropertyName recovers the logical property name from an attribute name
// produced by ToPropertyCol
func ToPropertyName(col string) string {
	return strings.TrimPrefix(col, propertyColPrefix)
}

// Helper functions

func namespacePrimaryKey(namespace table.Identifier) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		colIdentifier: &types.AttributeValueMemberS{Value: namespaceIdentifier},
		colNamespace:  &types.AttributeValueMemberS{Value: namespaceToString(namespace)},
	}
}

func namespaceToString(namespace table.Identifier) string {
	return strings.Join(namespace, ".")
}

// itemString extracts a string attribute from an item, returning "" when the
// attribute is absent or not string-valued
func itemString(item map[string]types.AttributeValue, col string) string {
	if av, ok := item[col].(*types.AttributeValueMemberS); ok {
		return av.Value
	}
	return ""
}

// newLocationSuffix returns a fresh 32-character lowercase hex token. The
// token only needs to be collision-resistant, not secret.
func newLocationSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
