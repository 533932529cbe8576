// Command loadplan recommends transport equipment for a cargo manifest and
// lays the cargo out on the chosen units.
//
// Usage:
//
//	loadplan -manifest cargo.csv
//	loadplan -manifest cargo.xlsx -catalog fleet.yaml -compare
//	loadplan -template "Site kit"
//
// Configuration is read from ~/.loadplan/config.yaml (or -config /
// LOADPLAN_CONFIG) and overridden by LOADPLAN_* environment variables,
// which may also come from a .env file in the working directory.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/piwi3910/LoadPlanner/internal/debug"
	"github.com/piwi3910/LoadPlanner/internal/engine"
	"github.com/piwi3910/LoadPlanner/internal/importer"
	"github.com/piwi3910/LoadPlanner/internal/model"
	"github.com/piwi3910/LoadPlanner/internal/project"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("loadplan failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configPath   string
	catalogPath  string
	manifestPath string
	templateName string
	saveTemplate string
	backupPath   string
	compare      bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fset := flag.NewFlagSet("loadplan", flag.ContinueOnError)
	fset.StringVar(&opts.configPath, "config", "", "config file (default ~/.loadplan/config.yaml)")
	fset.StringVar(&opts.catalogPath, "catalog", "", "equipment catalog file (default from config, then ~/.loadplan/catalog.yaml)")
	fset.StringVar(&opts.manifestPath, "manifest", "", "cargo manifest (.csv or .xlsx)")
	fset.StringVar(&opts.templateName, "template", "", "plan a saved shipment template instead of a manifest")
	fset.StringVar(&opts.saveTemplate, "save-template", "", "save the imported manifest as a shipment template with this name")
	fset.StringVar(&opts.backupPath, "backup", "", "write config, catalog and templates to this JSON file and exit")
	fset.BoolVar(&opts.compare, "compare", false, "compare the standard what-if scenarios instead of a single plan")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// run executes one invocation. The result goes to out as JSON; logs go to
// logOut.
func run(args []string, out, logOut io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("cannot read .env file", "error", err)
	}

	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := project.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	debug.Init(logOut, cfg.Debug, cfg.LogLevel)

	catalogPath := opts.catalogPath
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	if catalogPath == "" {
		catalogPath = project.DefaultCatalogPath()
	}
	catalog, err := project.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	templatePath := project.DefaultTemplatePath()
	templates, err := project.LoadTemplates(templatePath)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	if opts.backupPath != "" {
		if err := project.ExportAllDataWithTemplates(opts.backupPath, cfg, catalog, templates); err != nil {
			return err
		}
		slog.Info("backup written", "path", opts.backupPath)
		return nil
	}

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	var items []model.CargoItem
	switch {
	case opts.templateName != "":
		tmpl := templates.FindByName(opts.templateName)
		if tmpl == nil {
			return fmt.Errorf("no shipment template named %q", opts.templateName)
		}
		items = tmpl.ToItems()
		if len(tmpl.Settings.Priority) > 0 {
			settings = tmpl.Settings
		}
	case opts.manifestPath != "":
		items, err = importManifest(opts.manifestPath)
		if err != nil {
			return err
		}
	default:
		return errors.New("either -manifest or -template is required")
	}

	if opts.saveTemplate != "" {
		templates.Add(model.NewShipmentTemplate(opts.saveTemplate, opts.manifestPath, items, settings))
		if err := project.SaveTemplates(templatePath, templates); err != nil {
			return fmt.Errorf("saving template: %w", err)
		}
		slog.Info("template saved", "name", opts.saveTemplate, "path", templatePath)
	}

	if opts.compare {
		results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings, catalog), items, catalog)
		for _, r := range results {
			debug.Log("engine", "scenario planned", "scenario", r.Scenario.Name,
				"equipment", r.EquipmentID, "units", r.UnitsUsed, "feasible", r.Feasible)
		}
		return writeJSON(out, summarize(results))
	}

	result := engine.New(settings).Plan(items, catalog)
	debug.Log("engine", "plan complete", "status", result.Status,
		"equipment", result.Recommendation.EquipmentID, "selection", result.Recommendation.Status,
		"units", len(result.Units), "weight", result.Recommendation.Requirement.WeightRequired)
	for _, u := range result.Units {
		debug.Trace("engine", "unit planned", "unit", u.Index, "items", len(u.Placements),
			"weight", u.LoadedWeight(), "failure", u.Failure)
	}
	for _, r := range result.Rejected {
		slog.Warn("cargo item skipped", "id", r.ID, "description", r.Description)
	}
	if err := writeJSON(out, result); err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("plan %s: %w", result.Status, err)
	}
	return nil
}

// importManifest reads a manifest file, logging row problems. It fails only
// when no usable row was found.
func importManifest(path string) ([]model.CargoItem, error) {
	res := importer.ImportFile(path)
	for _, w := range res.Warnings {
		debug.Log("import", w, "path", path)
	}
	for _, e := range res.Errors {
		slog.Warn("manifest row rejected", "path", path, "problem", e)
	}
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("manifest %s: no cargo items imported", path)
	}
	slog.Info("manifest imported", "path", path, "items", len(res.Items), "rejected", len(res.Errors))
	return res.Items, nil
}

type scenarioSummary struct {
	Scenario          string   `json:"scenario"`
	Priority          []string `json:"priority"`
	NameMatching      bool     `json:"name_matching"`
	Equipment         string   `json:"equipment"`
	Status            string   `json:"status"`
	UnitsUsed         int      `json:"units_used"`
	PermitRequired    bool     `json:"permit_required"`
	WeightUtilization float64  `json:"weight_utilization"`
	Feasible          bool     `json:"feasible"`
}

func summarize(results []engine.ComparisonResult) []scenarioSummary {
	out := make([]scenarioSummary, len(results))
	for i, r := range results {
		out[i] = scenarioSummary{
			Scenario:          r.Scenario.Name,
			Priority:          r.Scenario.Settings.Priority,
			NameMatching:      r.Scenario.Settings.NameMatching,
			Equipment:         r.EquipmentID,
			Status:            string(r.Result.Recommendation.Status),
			UnitsUsed:         r.UnitsUsed,
			PermitRequired:    r.PermitRequired,
			WeightUtilization: r.WeightUtilization,
			Feasible:          r.Feasible,
		}
	}
	return out
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
