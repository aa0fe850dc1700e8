package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pyviz/internal/config"
	"pyviz/internal/pipeline"
	"pyviz/internal/watcher"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	formatFlag         string
	watchFlag          bool
	configFlag         string
	outputFlag         string
	generateConfigFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pyviz [files or directories]",
	Short: "Translate Python algorithms into algorithm-visualizer scripts",
	Long: `pyviz parses a restricted subset of Python, classifies the data
structures the algorithm manipulates, and emits a JavaScript program
instrumented with algorithm-visualizer tracer calls.

Examples:
  pyviz .                         # Translate all .py files under the current directory
  pyviz bubble_sort.py            # Translate a specific file
  pyviz --format=js sort.py       # Print only the generated script
  pyviz --format=json sort.py     # Full result as JSON
  pyviz -o out.js sort.py         # Write the generated script to a file
  pyviz --watch .                 # Re-translate on change
  pyviz --generate-config         # Generate sample config file`,
	Run: runTranslation,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (console, json, js)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch mode for development")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the generated script to a file")
	rootCmd.Flags().BoolVar(&generateConfigFlag, "generate-config", false, "Generate sample configuration file")
}

func runTranslation(cmd *cobra.Command, args []string) {
	if generateConfigFlag {
		generateConfig()
		return
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		color.Red("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if outputFlag != "" {
		cfg.Output.OutputFile = outputFlag
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	pyFiles := gatherPythonFiles(args)
	if len(pyFiles) == 0 {
		color.Yellow("No Python files found to translate\n")
		return
	}

	if watchFlag {
		runWatchMode(cfg, args, pyFiles)
		return
	}

	translateFiles(cfg, pyFiles)
}

func gatherPythonFiles(args []string) []string {
	var pyFiles []string
	for _, arg := range args {
		files, err := collectPythonFiles(arg)
		if err != nil {
			color.Red("Error collecting files from %s: %v\n", arg, err)
			continue
		}
		pyFiles = append(pyFiles, files...)
	}
	return pyFiles
}

func translateFiles(cfg *config.Config, pyFiles []string) {
	p := pipeline.New(cfg)
	reportGen := pipeline.NewReportGeneratorWithConfig(cfg)

	if cfg.Output.Verbose {
		color.Cyan("Translating %d Python files...\n\n", len(pyFiles))
	}

	maxBytes := int64(cfg.Files.MaxFileSize) * 1024

	for _, file := range pyFiles {
		info, err := os.Stat(file)
		if err != nil {
			color.Red("Failed to stat %s: %v\n", file, err)
			continue
		}
		if info.Size() > maxBytes {
			color.Yellow("Skipping %s: exceeds %d KB limit\n", file, cfg.Files.MaxFileSize)
			continue
		}

		src, err := os.ReadFile(file)
		if err != nil {
			color.Red("Failed to read %s: %v\n", file, err)
			continue
		}

		result := p.Run(string(src))
		report := reportGen.Generate(result)

		if len(pyFiles) > 1 && cfg.Output.Format != "json" {
			color.Cyan("== %s ==\n", file)
		}

		if cfg.Output.OutputFile != "" {
			if err := writeReportToFile(report, cfg.Output.OutputFile); err != nil {
				color.Red("Failed to write output to file: %v\n", err)
			} else {
				color.Green("Output saved to: %s\n", cfg.Output.OutputFile)
			}
		} else {
			fmt.Println(report)
		}
	}
}

func runWatchMode(cfg *config.Config, roots, pyFiles []string) {
	translateFiles(cfg, pyFiles)

	fw, err := watcher.NewFileWatcher(cfg)
	if err != nil {
		color.Red("Failed to start watcher: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	handler := func(changed []string) error {
		color.Cyan("\nChanges detected, re-translating %d file(s)...\n", len(changed))
		translateFiles(cfg, changed)
		return nil
	}

	if err := fw.Watch(roots, handler); err != nil {
		color.Red("Failed to watch paths: %v\n", err)
		os.Exit(1)
	}

	color.Green("Watching for changes (Ctrl+C to stop)...\n")
	select {}
}

func writeReportToFile(report, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, []byte(report), 0644)
}

func generateConfig() {
	configPath := ".pyviz.yml"
	if err := config.GenerateConfig(configPath); err != nil {
		color.Red("Failed to generate config file: %v\n", err)
		os.Exit(1)
	}
	color.Green("Generated sample configuration file: %s\n", configPath)
	color.Cyan("Run 'pyviz --config=%s .' to use it\n", configPath)
}

// collectPythonFiles recursively finds all .py files in the given path
func collectPythonFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if strings.HasSuffix(path, ".py") {
			return []string{path}, nil
		}
		return nil, nil
	}

	var pyFiles []string
	err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if name == ".git" || name == "node_modules" || name == "venv" ||
				name == ".venv" || name == "__pycache__" {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(filePath, ".py") {
			pyFiles = append(pyFiles, filePath)
		}

		return nil
	})

	return pyFiles, err
}
