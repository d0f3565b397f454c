// Sourdough Pro — a baker's percentage formulation and production
// planning tool.
//
// Usage:
//
//	sourdough [flags] <command> [args]
//
// Run "sourdough help" for the command list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/jin0205/sourdough-pro-ai/internal/backup"
	"github.com/jin0205/sourdough-pro-ai/internal/costing"
	"github.com/jin0205/sourdough-pro-ai/internal/domain"
	"github.com/jin0205/sourdough-pro-ai/internal/formula"
	"github.com/jin0205/sourdough-pro-ai/internal/gemini"
	"github.com/jin0205/sourdough-pro-ai/internal/importer"
	"github.com/jin0205/sourdough-pro-ai/internal/inventory"
	"github.com/jin0205/sourdough-pro-ai/internal/logger"
	"github.com/jin0205/sourdough-pro-ai/internal/planner"
	"github.com/jin0205/sourdough-pro-ai/internal/storage"
	"github.com/jin0205/sourdough-pro-ai/internal/units"
)

const envGeminiKey = "GEMINI_API_KEY"

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (default: stderr)")
	dbPath := flag.String("db", "sourdough.db", "path to the SQLite database")
	memOnly := flag.Bool("mem", false, "run against an in-memory store (nothing is persisted)")
	noAI := flag.Bool("no-ai", false, "disable AI features even if "+envGeminiKey+" is set")
	round := flag.String("round", "exact", "weight display rounding: exact, round1g or round5g")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to the
	// same output.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	var store domain.Store
	if *memOnly {
		store = storage.NewMemoryStore()
	} else {
		s, err := storage.OpenSQLite(*dbPath, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		store = s
	}
	defer store.Close()

	svc := storage.NewService(store, log)

	var ai domain.Extractor
	geminiKey := os.Getenv(envGeminiKey)
	if geminiKey != "" && !*noAI {
		ai = gemini.NewClient(geminiKey, log)
		log.Debug("AI features enabled")
	} else if !*noAI {
		log.Info("AI features disabled: set %s to enable", envGeminiKey)
	}

	app := &cliApp{
		svc:   svc,
		store: store,
		ai:    ai,
		log:   log,
		round: formula.Rounding(*round),
		out:   os.Stdout,
	}

	if err := app.run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type cliApp struct {
	svc   *storage.Service
	store domain.Store
	ai    domain.Extractor // nil when AI is disabled
	log   *logger.Logger
	round formula.Rounding
	out   io.Writer
}

func (a *cliApp) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.showHelp()
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "recipes", "list":
		return a.listRecipes(ctx)
	case "show":
		return a.showRecipe(ctx, rest)
	case "history":
		return a.showHistory(ctx, rest)
	case "delete":
		return a.deleteRecipe(ctx, rest)
	case "copy":
		return a.copyRecipe(ctx, rest)
	case "import":
		return a.importRecipe(ctx, rest)
	case "price":
		return a.suggestPrice(ctx, rest)
	case "advise":
		return a.advise(ctx, rest)
	case "plan":
		return a.plan(ctx, rest)
	case "stock":
		return a.stock(ctx, rest)
	case "convert":
		return a.convert(rest)
	case "export":
		return a.exportBackup(ctx, rest)
	case "restore":
		return a.restoreBackup(ctx, rest)
	case "help":
		a.showHelp()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try \"sourdough help\")", cmd)
	}
}

// findRecipe resolves a recipe reference: exact id first, then trimmed
// case-insensitive name.
func (a *cliApp) findRecipe(ctx context.Context, ref string) (domain.SavedRecipe, error) {
	recipes, err := a.svc.Recipes(ctx)
	if err != nil {
		return domain.SavedRecipe{}, err
	}
	for _, r := range recipes {
		if r.ID == ref {
			return r, nil
		}
	}
	want := strings.ToLower(strings.TrimSpace(ref))
	for _, r := range recipes {
		if strings.ToLower(strings.TrimSpace(r.Name)) == want {
			return r, nil
		}
	}
	return domain.SavedRecipe{}, fmt.Errorf("recipe %q: %w", ref, domain.ErrNotFound)
}

// ── Recipes ──────────────────────────────────────────────────────

func (a *cliApp) listRecipes(ctx context.Context) error {
	recipes, err := a.svc.Recipes(ctx)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		fmt.Fprintln(a.out, "No saved recipes. Use \"sourdough import\" to add one.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tLOAVES\tLOAF WEIGHT\tID")
	for _, r := range recipes {
		fmt.Fprintf(w, "%s\tv%d\t%.4g\t%.0fg\t%s\n",
			r.Name, r.Version, r.NumberOfLoaves, r.WeightPerLoaf, r.ID)
	}
	return w.Flush()
}

func (a *cliApp) showRecipe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sourdough show <recipe>")
	}
	rec, err := a.findRecipe(ctx, args[0])
	if err != nil {
		return err
	}
	items, err := a.svc.Inventory(ctx)
	if err != nil {
		return err
	}

	batch := formula.BatchFor(rec.RecipeSnapshot)
	totalFlour := formula.TotalFlourWeight(batch, rec.Flours, rec.Ingredients)
	cost := costing.CostRecipe(rec.RecipeSnapshot, items)

	fmt.Fprintf(a.out, "%s (v%d, %s)\n", rec.Name, rec.Version, rec.Date)
	fmt.Fprintf(a.out, "%.4g loaves x %.0fg = %.0fg dough, %.1fg total flour\n\n",
		rec.NumberOfLoaves, rec.WeightPerLoaf, batch.TargetWeight(), totalFlour)

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INGREDIENT\tPCT\tWEIGHT\tCOST")
	for _, line := range cost.Lines {
		src := ""
		if line.FromInventory {
			src = " (inventory)"
		}
		costCol := "-"
		if line.PricePerKg > 0 {
			costCol = fmt.Sprintf("$%.2f%s", line.Cost, src)
		}
		pct, _ := formula.SolvePercentage(line.Weight, totalFlour)
		fmt.Fprintf(w, "%s\t%.4g%%\t%sg\t%s\n",
			line.Name, pct, formula.DisplayWeight(line.Weight, a.round), costCol)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nTotal cost: $%.2f ($%.2f per loaf, pricing %s)\n",
		cost.TotalCost, cost.CostPerLoaf, cost.Coverage)
	if formula.BlendUnbalanced(rec.Flours) {
		fmt.Fprintf(a.out, "warning: flour blend sums to %.4g%%, not 100%%\n",
			formula.PercentSum(rec.Flours))
	}
	return nil
}

func (a *cliApp) showHistory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sourdough history <recipe>")
	}
	rec, err := a.findRecipe(ctx, args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tDATE\tLOAVES\tLOAF WEIGHT\tFLOURS\tADD-INS")
	print := func(snap domain.RecipeSnapshot, current bool) {
		marker := ""
		if current {
			marker = " (current)"
		}
		fmt.Fprintf(w, "v%d%s\t%s\t%.4g\t%.0fg\t%d\t%d\n",
			snap.Version, marker, snap.Date, snap.NumberOfLoaves, snap.WeightPerLoaf,
			len(snap.Flours), len(snap.Ingredients))
	}
	print(rec.RecipeSnapshot, true)
	for _, snap := range rec.History {
		print(snap, false)
	}
	return w.Flush()
}

func (a *cliApp) deleteRecipe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sourdough delete <recipe>")
	}
	rec, err := a.findRecipe(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.svc.DeleteRecipe(ctx, rec.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q and its plan entries.\n", rec.Name)
	return nil
}

func (a *cliApp) copyRecipe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sourdough copy <recipe>")
	}
	rec, err := a.findRecipe(ctx, args[0])
	if err != nil {
		return err
	}
	clone, err := a.svc.SaveCopy(ctx, rec.Name, rec.RecipeSnapshot)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %q (%s).\n", clone.Name, clone.ID)
	return nil
}

// ── AI commands ──────────────────────────────────────────────────

func (a *cliApp) requireAI() error {
	if a.ai == nil {
		return fmt.Errorf("AI features are disabled: set %s and drop -no-ai", envGeminiKey)
	}
	return nil
}

func (a *cliApp) importRecipe(ctx context.Context, args []string) error {
	if err := a.requireAI(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: sourdough import <file> (use \"-\" for stdin)")
	}

	var text []byte
	var err error
	if args[0] == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	extracted, err := a.ai.ParseRecipeText(ctx, string(text))
	if err != nil {
		return err
	}
	name, snap, err := importer.BuildSnapshot(extracted)
	if err != nil {
		return err
	}

	rec, err := a.svc.SaveRecipe(ctx, "", name, snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %q: %d flour(s), %d add-in(s).\n",
		rec.Name, len(rec.Flours), len(rec.Ingredients))
	return a.showRecipe(ctx, []string{rec.ID})
}

func (a *cliApp) suggestPrice(ctx context.Context, args []string) error {
	if err := a.requireAI(); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: sourdough price <ingredient name>")
	}
	name := strings.Join(args, " ")
	price, err := a.ai.SuggestIngredientCost(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: about $%.2f/kg\n", name, price)
	return nil
}

func (a *cliApp) advise(ctx context.Context, args []string) error {
	if err := a.requireAI(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: sourdough advise <recipe> <goal...>")
	}
	rec, err := a.findRecipe(ctx, args[0])
	if err != nil {
		return err
	}

	var b strings.Builder
	batch := formula.BatchFor(rec.RecipeSnapshot)
	totalFlour := formula.TotalFlourWeight(batch, rec.Flours, rec.Ingredients)
	fmt.Fprintf(&b, "%s: %.4g loaves x %.0fg\n", rec.Name, rec.NumberOfLoaves, rec.WeightPerLoaf)
	for _, f := range rec.Flours {
		fmt.Fprintf(&b, "- %s %.4g%% (%.0fg)\n", f.Name, f.Percentage, formula.IngredientWeight(totalFlour, f.Percentage))
	}
	for _, ing := range rec.Ingredients {
		fmt.Fprintf(&b, "- %s %.4g%% (%.0fg)\n", ing.Name, ing.Percentage, formula.IngredientWeight(totalFlour, ing.Percentage))
	}

	advice, err := a.ai.RecipeSuggestions(ctx, b.String(), strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, advice)
	return nil
}

// ── Production plan ──────────────────────────────────────────────

func (a *cliApp) plan(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.showPlan(ctx)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		if len(rest) != 1 {
			return errors.New("usage: sourdough plan add <recipe>")
		}
		rec, err := a.findRecipe(ctx, rest[0])
		if err != nil {
			return err
		}
		item, err := a.svc.AddToPlan(ctx, rec.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added %q x %.4g (entry %s).\n", rec.Name, item.Count, item.UniqueID)
		return nil
	case "count":
		if len(rest) != 2 {
			return errors.New("usage: sourdough plan count <entry> <loaves>")
		}
		n, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return fmt.Errorf("bad loaf count %q", rest[1])
		}
		return a.svc.UpdatePlanCount(ctx, rest[0], n)
	case "remove":
		if len(rest) != 1 {
			return errors.New("usage: sourdough plan remove <entry>")
		}
		return a.svc.RemoveFromPlan(ctx, rest[0])
	case "scale":
		return a.scalePlan(ctx, rest)
	default:
		return fmt.Errorf("unknown plan command %q", cmd)
	}
}

func (a *cliApp) scalePlan(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: sourdough plan scale percent <value> | target <grams>")
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad scale value %q", args[1])
	}

	var mode planner.ScaleMode
	switch args[0] {
	case "percent", "percentage":
		mode = planner.ScalePercentage
	case "target", "weight":
		mode = planner.ScaleTargetWeight
	default:
		return fmt.Errorf("unknown scale mode %q", args[0])
	}

	plan, err := a.svc.SyncPlannerItems(ctx)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		return domain.ErrEmptyPlan
	}

	scaled, ok := planner.Rescale(plan, mode, value)
	if !ok {
		return fmt.Errorf("plan cannot be scaled by %s %.4g", args[0], value)
	}
	if err := a.svc.ReplacePlan(ctx, scaled); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Plan rescaled to %.0fg of dough.\n", planner.TotalDoughWeight(scaled))
	return a.showPlan(ctx)
}

func (a *cliApp) showPlan(ctx context.Context) error {
	plan, err := a.svc.SyncPlannerItems(ctx)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		fmt.Fprintln(a.out, "The production plan is empty. Use \"sourdough plan add\".")
		return nil
	}
	items, err := a.svc.Inventory(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tRECIPE\tLOAVES\tDOUGH")
	for _, p := range plan {
		fmt.Fprintf(w, "%s\t%s (v%d)\t%.4g\t%sg\n",
			p.UniqueID, p.Recipe.Name, p.Recipe.Version, p.Count,
			formula.DisplayWeight(p.Count*p.Recipe.WeightPerLoaf, a.round))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	summary := planner.Aggregate(plan, items)
	fmt.Fprintf(a.out, "\nShopping list for %.0fg of dough:\n", summary.TotalDoughWeight)

	w = tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INGREDIENT\tWEIGHT\tCOST")
	for _, req := range summary.Items {
		costCol := "-"
		if req.Cost > 0 {
			costCol = fmt.Sprintf("$%.2f", req.Cost)
		}
		fmt.Fprintf(w, "%s\t%sg\t%s\n", req.Name, formula.DisplayWeight(req.Weight, a.round), costCol)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nTotal ingredient cost: $%.2f\n", summary.TotalCost)
	return nil
}

// ── Inventory ────────────────────────────────────────────────────

func (a *cliApp) stock(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.showStock(ctx)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "receive":
		return a.receiveStock(ctx, rest)
	case "set":
		if len(rest) != 2 {
			return errors.New("usage: sourdough stock set <item> <grams>")
		}
		grams, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return fmt.Errorf("bad quantity %q", rest[1])
		}
		return a.svc.UpdateStock(ctx, rest[0], grams)
	case "cost":
		return a.setStockCost(ctx, rest)
	case "delete":
		if len(rest) != 1 {
			return errors.New("usage: sourdough stock delete <item>")
		}
		return a.svc.DeleteInventoryItem(ctx, rest[0])
	default:
		return fmt.Errorf("unknown stock command %q", cmd)
	}
}

func (a *cliApp) receiveStock(ctx context.Context, args []string) error {
	if len(args) != 5 {
		return errors.New("usage: sourdough stock receive <name> <weight> <unit> <count> <package-cost>")
	}
	weight, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad weight %q", args[1])
	}
	count, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("bad package count %q", args[3])
	}
	cost, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return fmt.Errorf("bad package cost %q", args[4])
	}

	item, err := a.svc.ReceiveStock(ctx, args[0], inventory.Package{
		Weight:          weight,
		Unit:            domain.Unit(args[2]),
		ItemsPerPackage: count,
		CostPerPackage:  cost,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Received %.0fg of %q at $%.2f/kg (%s).\n",
		item.Quantity, item.Name, item.CostPerKg, item.ID)
	return nil
}

func (a *cliApp) setStockCost(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: sourdough stock cost <item> <$/kg | ai>")
	}

	items, err := a.svc.Inventory(ctx)
	if err != nil {
		return err
	}
	var target *domain.InventoryItem
	for i := range items {
		if items[i].ID == args[0] {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("inventory item %q: %w", args[0], domain.ErrNotFound)
	}

	var price float64
	if args[1] == "ai" {
		if err := a.requireAI(); err != nil {
			return err
		}
		price, err = a.ai.SuggestIngredientCost(ctx, target.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "AI estimate for %q: $%.2f/kg\n", target.Name, price)
	} else {
		price, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("bad price %q", args[1])
		}
	}
	return a.svc.UpdateItemCost(ctx, target.ID, price)
}

func (a *cliApp) showStock(ctx context.Context) error {
	items, err := a.svc.Inventory(ctx)
	if err != nil {
		return err
	}
	plan, err := a.svc.SyncPlannerItems(ctx)
	if err != nil {
		return err
	}

	requirements := planner.Aggregate(plan, items).Weights()
	rows := inventory.Reconcile(items, requirements)
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No tracked stock and nothing planned.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INGREDIENT\tIN STOCK\tALLOCATED\tBALANCE\tSTATUS")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%sg\t%sg\t%sg\t%s\n",
			row.Name,
			formula.DisplayWeight(row.InStock, a.round),
			formula.DisplayWeight(row.Allocated, a.round),
			formula.DisplayWeight(row.Balance, a.round),
			row.Status())
	}
	return w.Flush()
}

// ── Conversions ──────────────────────────────────────────────────

func (a *cliApp) convert(args []string) error {
	usage := errors.New("usage: sourdough convert weight <amount> <g|kg|lb|oz> | volume <amount> <cup|tbsp|tsp> <ingredient...> | temp <value> <c|f>")
	if len(args) < 3 {
		return usage
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad amount %q", args[1])
	}

	switch args[0] {
	case "weight":
		grams := units.ToGrams(amount, domain.Unit(args[2]))
		fmt.Fprintf(a.out, "%.4g %s = %.1fg\n", amount, args[2], grams)
	case "volume":
		if len(args) < 4 {
			return usage
		}
		ingredient := strings.Join(args[3:], " ")
		grams := units.VolumeToGrams(amount, units.VolumeUnit(args[2]), ingredient)
		fmt.Fprintf(a.out, "%.4g %s of %s = %.1fg\n", amount, args[2], ingredient, grams)
	case "temp":
		switch strings.ToLower(args[2]) {
		case "c":
			fmt.Fprintf(a.out, "%.4g°C = %.1f°F\n", amount, units.CelsiusToFahrenheit(amount))
		case "f":
			fmt.Fprintf(a.out, "%.4g°F = %.1f°C\n", amount, units.FahrenheitToCelsius(amount))
		default:
			return usage
		}
	default:
		return usage
	}
	return nil
}

// ── Backup ───────────────────────────────────────────────────────

func (a *cliApp) exportBackup(ctx context.Context, args []string) error {
	now := time.Now()
	path := backup.FileName(now)
	if len(args) == 1 {
		path = args[0]
	} else if len(args) > 1 {
		return errors.New("usage: sourdough export [file]")
	}

	bundle, err := backup.Export(ctx, a.store, now)
	if err != nil {
		return err
	}
	data, err := bundle.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d recipe(s), %d stock item(s), %d plan entries to %s.\n",
		len(bundle.Recipes), len(bundle.Inventory), len(bundle.Planner), path)
	return nil
}

func (a *cliApp) restoreBackup(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sourdough restore <file>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	bundle, err := backup.Decode(data)
	if err != nil {
		return err
	}
	if err := backup.Import(ctx, a.store, bundle); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Restored %d recipe(s), %d stock item(s), %d plan entries.\n",
		len(bundle.Recipes), len(bundle.Inventory), len(bundle.Planner))
	return nil
}

func (a *cliApp) showHelp() {
	fmt.Fprint(a.out, `sourdough [flags] <command> [args]

Recipes:
  recipes                     List saved recipes
  show <recipe>               Print the formula with weights and costs
  history <recipe>            List a recipe's saved versions
  copy <recipe>               Save a copy of a recipe
  delete <recipe>             Delete a recipe (and its plan entries)

Production plan:
  plan                        Show the plan and aggregated shopping list
  plan add <recipe>           Add a recipe to the plan
  plan count <entry> <n>      Set an entry's loaf count
  plan remove <entry>         Remove an entry
  plan scale percent <v>      Scale all counts to v% of current
  plan scale target <grams>   Scale all counts to hit a dough weight

Stock:
  stock                       Stock vs. plan reconciliation table
  stock receive <name> <weight> <unit> <count> <cost>
                              Record a purchase (unit: g, kg, lb, oz)
  stock set <item> <grams>    Set an item's current quantity
  stock cost <item> <$|ai>    Set or AI-estimate an item's $/kg
  stock delete <item>         Remove an item

AI (requires `+envGeminiKey+`):
  import <file|->             Extract a recipe from free text and save it
  price <ingredient>          Estimate an ingredient's market price
  advise <recipe> <goal...>   Get formula advice for a goal

Conversions:
  convert weight <n> <unit>   Convert a weight to grams (g, kg, lb, oz)
  convert volume <n> <u> <i>  Convert cups/tbsp/tsp of an ingredient to grams
  convert temp <n> <c|f>      Convert a dough or oven temperature

Backup:
  export [file]               Write all data to a JSON backup
  restore <file>              Replace all data from a backup

Flags: -db <path>, -mem, -round exact|round1g|round5g, -verbose, -quiet, -log-file <path>, -no-ai
`)
}
