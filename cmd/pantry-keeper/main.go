package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"pantry-keeper/internal/app"
	"pantry-keeper/internal/clipper"
	"pantry-keeper/internal/config"
	"pantry-keeper/internal/database"
	"pantry-keeper/internal/llm"
	"pantry-keeper/internal/metrics"
	"pantry-keeper/internal/recipe"
	"pantry-keeper/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var textGen llm.TextGenerator
	switch cfg.LLMBackend {
	case "groq":
		textGen = llm.NewGroqClient(cfg)
	default:
		gen, closer, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer closer.Close()
		textGen = gen
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	kv := storage.NewKVStore(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)
	clip := clipper.NewClipper(textGen)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	application := app.NewApp(kv, textGen, metricsStore, clip, rng)
	if err := application.Load(ctx); err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "recipes":
		filter := recipe.FilterAll
		if len(os.Args) > 2 {
			filter = recipe.Filter(os.Args[2])
		}
		for _, m := range application.ClassifyRecipes(filter) {
			fmt.Printf("%s %s", m.Recipe.Symbol, m.Recipe.Title)
			if len(m.Missing) > 0 {
				fmt.Printf("  (missing: %s)", strings.Join(m.Missing, ", "))
			}
			fmt.Println()
		}
	case "shopping":
		for _, g := range application.ShoppingByStore() {
			fmt.Printf("%s (total %d)\n", g.Store, g.Total)
			for _, it := range g.Items {
				mark := " "
				if it.Done {
					mark = "x"
				}
				fmt.Printf("  [%s] %s  %d\n", mark, it.Name, it.Price)
			}
		}
	case "discover":
		discoverCmd := flag.NewFlagSet("discover", flag.ExitOnError)
		accept := discoverCmd.String("accept", "", "Accept the suggestion with a disposition: always, want, or none")
		discoverCmd.Parse(os.Args[2:])

		selected := discoverCmd.Args()
		prov, err := application.DiscoverRecipe(ctx, selected)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		fmt.Printf("%s %s: %s\n", prov.Symbol, prov.Title, strings.Join(prov.Ingredients, ", "))

		if *accept == "" {
			application.RejectSuggestion(prov)
			fmt.Println("Suggestion discarded (pass -accept to keep it).")
			return
		}
		accepted, err := application.AcceptSuggestion(ctx, prov, recipe.Status(*accept))
		if err != nil {
			log.Fatalf("Acceptance failed: %v", err)
		}
		fmt.Printf("Added to catalog as %s.\n", accepted.ID)
	case "import":
		if len(os.Args) < 3 {
			log.Fatal("Usage: pantry-keeper import <url>")
		}
		prov, err := application.ImportRecipe(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		accepted, err := application.AcceptSuggestion(ctx, prov, recipe.StatusNone)
		if err != nil {
			log.Fatalf("Acceptance failed: %v", err)
		}
		fmt.Printf("Imported %s %s (%d ingredients).\n", accepted.Symbol, accepted.Title, len(accepted.Ingredients))
	case "expiry":
		if len(os.Args) < 3 {
			log.Fatal("Usage: pantry-keeper expiry <ingredient-id>")
		}
		date, err := application.EstimateExpiry(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Estimation failed: %v", err)
		}
		if date == "" {
			fmt.Println("No date could be extracted; ingredient left unchanged.")
			return
		}
		fmt.Printf("Expiry set to %s.\n", date)
	case "usage":
		usageCmd := flag.NewFlagSet("usage", flag.ExitOnError)
		days := usageCmd.Int("days", 7, "Show usage for the last N days")
		usageCmd.Parse(os.Args[2:])

		rows, err := metricsStore.GetDailyUsage(ctx, *days)
		if err != nil {
			log.Fatalf("Failed to read usage: %v", err)
		}
		for _, u := range rows {
			fmt.Printf("%s  calls=%d prompt=%d completion=%d\n", u.Date, u.TotalCalls, u.TotalPrompt, u.TotalCompletion)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: pantry-keeper <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  recipes [filter]      List recipes (ready, almost, always, want, all)")
	fmt.Println("  shopping              Show the shopping list grouped by store")
	fmt.Println("  discover <names...>   Ask the AI for one recipe over the given ingredients")
	fmt.Println("  import <url>          Import a recipe from a web page")
	fmt.Println("  expiry <id>           Estimate an ingredient's use-by date")
	fmt.Println("  usage [-days N]       Show AI token usage")
	fmt.Println("  metrics-cleanup       Remove old metric records")
}
