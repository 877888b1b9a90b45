package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"asmlens/internal/analysis"
	"asmlens/internal/config"
	"asmlens/internal/describe"
	"asmlens/internal/export"
	"asmlens/internal/metadata"
	"asmlens/internal/report"
	"asmlens/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "asmlens",
		Short: "Static analyzer for compiled managed assemblies",
	}
	dbPath  string
	cfgPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "asmlens.db", "Path to the local analysis database (SQLite)")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Path to the configuration file")

	analyzeCmd.Flags().StringP("out", "o", "reports", "Directory for the generated report files")
	analyzeCmd.Flags().Bool("mermaid", false, "Also write mermaid diagrams of the analyzed types")

	reportCmd.Flags().StringP("out", "o", "reports", "Directory for the generated report files")

	exportCmd.Flags().Bool("clean", false, "Clean existing graph data before loading")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(listCmd)
}

// loadConfig loads the config file, falling back to defaults only when
// the file is absent. A file that exists but does not parse is fatal, so
// a typo cannot silently change the analysis knobs.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default()
		}
		log.Fatalf("Failed to load config %s: %v", cfgPath, err)
	}
	return cfg
}

// initStore initializes the SQLite store.
func initStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(dbPath)
}

func analysisOptions(cfg *config.Config) analysis.Options {
	return analysis.Options{
		FormBaseType:       cfg.Analysis.FormBaseType,
		ControlPrefixes:    cfg.Analysis.ControlPrefixes,
		ExtraNoisePrefixes: cfg.Analysis.NoisePrefixes,
		SetterLookahead:    cfg.Analysis.SetterLookahead,
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <assembly.json>",
	Short: "Analyze an assembly document and write the full/summary/external reports",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("out")
		mermaid, _ := cmd.Flags().GetBool("mermaid")

		fmt.Printf("📂 Loading assembly document: %s\n", args[0])
		asm, err := metadata.Load(args[0])
		if err != nil {
			log.Fatalf("Failed to load input: %v", err)
		}

		cfg := loadConfig()

		fmt.Printf("🔬 Analyzing %s (%d types)...\n", asm.Name, len(asm.Types))
		start := time.Now()
		r := analysis.New(asm, analysisOptions(cfg)).Run()
		fmt.Printf("✅ Analysis complete in %v. %d types, %d external calls.\n",
			time.Since(start), len(r.Types), len(r.ExternalCalls))

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		fmt.Println("💾 Saving to local database...")
		if err := store.SaveReport(context.Background(), r); err != nil {
			log.Fatalf("Failed to save analysis: %v", err)
		}

		if err := report.WriteAll(outDir, r); err != nil {
			log.Fatalf("Failed to write reports: %v", err)
		}
		fmt.Printf("🎉 Reports written to %s/. Database: %s\n", outDir, dbPath)

		if mermaid {
			if err := writeMermaid(outDir, r); err != nil {
				log.Fatalf("Failed to write diagrams: %v", err)
			}
			fmt.Printf("📈 Diagrams written to %s/.\n", outDir)
		}
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <assembly-name>",
	Short: "Re-generate the report views from a stored analysis run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("out")

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		r, err := store.LoadReport(context.Background(), args[0])
		if err != nil {
			log.Fatalf("Failed to load analysis: %v", err)
		}

		if err := report.WriteAll(outDir, r); err != nil {
			log.Fatalf("Failed to write reports: %v", err)
		}
		fmt.Printf("✅ Reports for %s written to %s/.\n", r.Name, outDir)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <assembly-name>",
	Short: "Export a stored analysis run to Neo4j",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		clean, _ := cmd.Flags().GetBool("clean")
		cfg := loadConfig()
		if cfg.Neo4j.Password == "" {
			log.Fatalf("Neo4j password not configured (set neo4j.password or ASMLENS_NEO4J_PASS)")
		}

		ctx := context.Background()

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		r, err := store.LoadReport(ctx, args[0])
		if err != nil {
			log.Fatalf("Failed to load analysis: %v", err)
		}

		exporter, err := export.NewNeo4jExporter(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
		if err != nil {
			log.Fatalf("Failed to connect to Neo4j: %v", err)
		}
		defer exporter.Close()

		if clean {
			if err := exporter.CleanGraph(); err != nil {
				log.Fatalf("Failed to clean graph: %v", err)
			}
		}
		if err := exporter.CreateIndexes(); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		if err := exporter.ExportReport(r); err != nil {
			log.Fatalf("Failed to export graph: %v", err)
		}
		fmt.Printf("🎉 Exported %s to %s.\n", r.Name, cfg.Neo4j.URI)
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <assembly-name>",
	Short: "Generate a natural-language description of a stored analysis run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cfg.AI.APIKey == "" {
			log.Fatalf("AI API key not configured (set ai.api_key or ASMLENS_API_KEY)")
		}

		ctx := context.Background()

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		r, err := store.LoadReport(ctx, args[0])
		if err != nil {
			log.Fatalf("Failed to load analysis: %v", err)
		}

		summarizer, err := describe.NewGeminiSummarizer(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("Failed to create summarizer: %v", err)
		}

		fmt.Println("🧠 Generating description...")
		text, err := summarizer.DescribeAssembly(ctx, r)
		if err != nil {
			log.Fatalf("Failed to generate description: %v", err)
		}
		fmt.Println(text)
	},
}

var impactCmd = &cobra.Command{
	Use:   "impact <assembly-name> <member-or-type-id>",
	Short: "Show which members are affected by a change to a member or type",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		r, err := store.LoadReport(context.Background(), args[0])
		if err != nil {
			log.Fatalf("Failed to load analysis: %v", err)
		}

		rep := analysis.NewImpactAnalyzer(r).AnalyzeImpact(args[1])
		if len(rep.DirectlyAffected) == 0 && len(rep.IndirectlyAffected) == 0 {
			fmt.Printf("Nothing references %s.\n", rep.Target)
			return
		}
		fmt.Printf("Impact of %s:\n", rep.Target)
		fmt.Printf("  Directly affected (%d):\n", len(rep.DirectlyAffected))
		for _, id := range rep.DirectlyAffected {
			fmt.Printf("    %s\n", id)
		}
		fmt.Printf("  Indirectly affected (%d):\n", len(rep.IndirectlyAffected))
		for _, id := range rep.IndirectlyAffected {
			fmt.Printf("    %s\n", id)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analysis runs",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		names, err := store.ListAssemblies(context.Background())
		if err != nil {
			log.Fatalf("Failed to list assemblies: %v", err)
		}
		if len(names) == 0 {
			fmt.Println("No stored analysis runs.")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func writeMermaid(dir string, r *report.AssemblyReport) error {
	gen := &report.MermaidGenerator{}
	if err := os.WriteFile(filepath.Join(dir, "types.mmd.md"), []byte(gen.GenerateClassDiagram(r)), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "external.mmd.md"), []byte(gen.GenerateExternalFlow(r)), 0o644)
}
