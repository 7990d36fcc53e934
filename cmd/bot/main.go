package main

import (
	"log"

	"github.com/docugen/docgen_bot/internal/bot"
	"github.com/docugen/docgen_bot/internal/config"
	"github.com/docugen/docgen_bot/internal/repository"
	"github.com/docugen/docgen_bot/internal/tax"
	"github.com/docugen/docgen_bot/internal/wizard"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	table := tax.DefaultTable()
	if cfg.TaxTablePath != "" {
		table, err = tax.LoadTable(cfg.TaxTablePath)
		if err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("Using tax table for year %d", table.Year)

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal(err)
	}

	machine := wizard.NewMachine(table)

	b, err := bot.NewBot(cfg.TelegramToken, machine, repo)
	if err != nil {
		log.Fatal(err)
	}

	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
