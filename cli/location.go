package cli

import (
	"fmt"
	"strings"

	"github.com/TFMV/dynacat/catalog"
	"github.com/TFMV/dynacat/config"
	"github.com/apache/iceberg-go/table"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"
)

var locationCmd = &cobra.Command{
	Use:   "location <namespace.table>",
	Short: "Resolve the default warehouse location for a table",
	Long: `Resolve the default warehouse location for a table.

The location is computed from the namespace metadata stored in the DynamoDB
catalog table: a namespace-level location override when one is set, otherwise
the configured warehouse root.

Examples:
  dynacat location sales.orders        # Resolve location of orders in sales
  dynacat location analytics.daily.events`,
	Args: cobra.ExactArgs(1),
	RunE: runLocation,
}

func init() {
	rootCmd.AddCommand(locationCmd)
}

func runLocation(cmd *cobra.Command, args []string) error {
	configPath, cfg, err := config.FindConfig()
	if err != nil {
		return fmt.Errorf("failed to find dynacat configuration: %w", err)
	}

	if cmd.Flag("verbose").Value.String() == "true" {
		fmt.Printf("Using configuration: %s\n", configPath)
	}

	identifier, err := parseTableIdentifier(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	client, err := newDynamoDBClient(cmd, cfg)
	if err != nil {
		return err
	}

	cat, err := catalog.NewCatalog(cfg, client)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}
	defer cat.Close()

	location, err := cat.DefaultWarehouseLocation(ctx, identifier)
	if err != nil {
		return err
	}

	fmt.Println(location)
	return nil
}

// newDynamoDBClient builds a DynamoDB client from the environment's AWS
// configuration, honoring the region and endpoint overrides in the config
func newDynamoDBClient(cmd *cobra.Command, cfg *config.Config) (*dynamodb.Client, error) {
	if cfg.Catalog.DynamoDB == nil {
		return nil, fmt.Errorf("DynamoDB catalog configuration is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Catalog.DynamoDB.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Catalog.DynamoDB.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(cmd.Context(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Catalog.DynamoDB.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Catalog.DynamoDB.Endpoint)
		}
	}), nil
}

// parseTableIdentifier parses "ns.table" or "ns1.ns2.table" into a table
// identifier. The last segment is the table name, everything before it is
// the namespace.
func parseTableIdentifier(name string) (table.Identifier, error) {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("table name must be in format 'namespace.table'")
	}

	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("table identifier %q has an empty segment", name)
		}
	}

	return table.Identifier(parts), nil
}
