package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/transit-ingress/pkg/archive"
	"github.com/David-Botos/transit-ingress/pkg/connector"
	"github.com/David-Botos/transit-ingress/pkg/export"
	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/pipeline"
	"github.com/David-Botos/transit-ingress/pkg/tabular"
)

func newFileCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Score a CSV, TSV, XLSX or HTML catalog file",
		Long: `Score a local catalog file. With --source file (the default) the catalog is
inferred from the headers. Candidate IDs are prefixed FILE- either way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := model.ParseVariant(source)
			if err != nil {
				return err
			}

			ds, err := tabular.DecodeFile(args[0])
			if err != nil {
				return err
			}

			job := pipeline.NewJob(ds, variant, model.OriginFile)
			if variant == model.VariantGeneric {
				job = job.WithInferredVariant()
			}
			return scoreAndReport(cmd, job)
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "file", "Catalog variant: file (infer), toi or koi")
	return cmd
}

func newArchiveCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Fetch and score the TOI or KOI table from the NASA Exoplanet Archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := model.ParseVariant(source)
			if err != nil {
				return err
			}

			client := archive.NewClient(archive.Options{
				URL:      cfg.ArchiveURL,
				Timeout:  cfg.ArchiveTimeout(),
				RetryMax: cfg.ArchiveRetryMax,
			}, logger)

			ds, err := client.Fetch(cmd.Context(), variant)
			if err != nil {
				return err
			}
			return scoreAndReport(cmd, pipeline.NewJob(ds, variant, model.OriginArchive))
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "toi", "Archive table: toi or koi")
	return cmd
}

func newSQLCmd() *cobra.Command {
	var driverName, table, query, source string
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Score rows from a Snowflake, PostgreSQL or SQLite catalog",
		Long: `Score the result of a read-only query against a catalog database.
Connection settings come from SNOWFLAKE_*, POSTGRES_* or SQLITE_* variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (table == "") == (query == "") {
				return fmt.Errorf("exactly one of --table or --query is required")
			}
			driver, err := connector.ParseDriver(driverName)
			if err != nil {
				return err
			}
			variant, err := model.ParseVariant(source)
			if err != nil {
				return err
			}
			if table != "" {
				if query, err = connector.TableQuery(table, 0); err != nil {
					return err
				}
			}

			conn, err := connector.NewFactory(logger).Create(cmd.Context(), driver)
			if err != nil {
				return err
			}
			defer conn.Close()

			ds, err := connector.QueryDataset(cmd.Context(), conn, query, 0)
			if err != nil {
				return err
			}
			if table != "" {
				ds.Name = table
			}

			job := pipeline.NewJob(ds, variant, model.OriginSQL)
			if variant == model.VariantGeneric {
				job = job.WithInferredVariant()
			}
			return scoreAndReport(cmd, job)
		},
	}
	cmd.Flags().StringVarP(&driverName, "driver", "d", "sqlite", "Database driver: snowflake, postgres or sqlite")
	cmd.Flags().StringVarP(&table, "table", "t", "", "Table to read (schema-qualified names allowed)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query to run instead of --table")
	cmd.Flags().StringVarP(&source, "source", "s", "file", "Catalog variant: file (infer), toi or koi")
	return cmd
}

// scoreAndReport runs job, writes the optional export file and prints results
func scoreAndReport(cmd *cobra.Command, job pipeline.Job) error {
	res, err := newPipeline().Run(cmd.Context(), job)
	if err != nil {
		return err
	}

	if outPath != "" {
		path, err := exportPath(outPath, time.Now())
		if err != nil {
			return err
		}
		if err := export.WriteFile(path, res.Records, res.Stats); err != nil {
			return err
		}
		logger.Info("Exported results", zap.String("path", path), zap.Int("records", len(res.Records)))
	}

	n := limit
	if n <= 0 {
		n = cfg.DisplayLimit
	}
	return report(cmd.OutOrStdout(), res, outFormat, n)
}

// exportPath resolves --out; an existing directory gets the default file name
func exportPath(out string, now time.Time) (string, error) {
	info, err := os.Stat(out)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(out, export.DefaultFileName(now)), nil
	case err == nil, os.IsNotExist(err):
		return out, nil
	default:
		return "", fmt.Errorf("failed to stat %s: %w", out, err)
	}
}
