package main

import (
	"context"
	"log"
	"os"

	"github.com/vikramraju/customer-feedback/backend/internal/adapters/database"
	"github.com/vikramraju/customer-feedback/backend/internal/adapters/providers/otp"
	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/entities"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/clients/postgres"
	"github.com/vikramraju/customer-feedback/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	productRepo := database.NewProductAdapter(pgClient)
	questionRepo := database.NewQuestionAdapter(pgClient)
	customerRepo := database.NewCustomerAdapter(pgClient)

	productService := services.NewProductService(productRepo)
	questionService := services.NewQuestionService(questionRepo, productRepo)
	customerService := services.NewCustomerService(
		customerRepo,
		productRepo,
		otp.NewMockAdapter(),
		cfg.OTP.DefaultCountryCode,
	)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				feedback_answers,
				feedback,
				customer_products,
				customers,
				questions,
				products
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed products
	products := []entities.Product{
		{Name: "Solar Water Heater 100L", Code: "SWH-100"},
		{Name: "Solar Water Heater 200L", Code: "SWH-200"},
		{Name: "Rooftop Solar Panel 3kW", Code: "RSP-3K"},
		{Name: "Heat Pump 150L", Code: "HP-150"},
	}

	for i := range products {
		if err := productService.Create(ctx, &products[i]); err != nil {
			log.Printf("Failed to create product %s: %v", products[i].Name, err)
		}
	}

	// 2. Seed questions (common plus one per-product entry)
	questions := []entities.Question{
		{Text: "How satisfied are you with the installation process?", Kind: entities.QuestionKindCommon},
		{Text: "How would you rate the after-sales support?", Kind: entities.QuestionKindCommon},
		{Text: "How likely are you to recommend us to a friend?", Kind: entities.QuestionKindCommon},
		{Text: "How consistent is the hot water temperature?", Kind: entities.QuestionKindProduct, ProductRef: products[0].ID},
		{Text: "How satisfied are you with the panel output in cloudy weather?", Kind: entities.QuestionKindProduct, ProductRef: products[2].ID},
	}

	for i := range questions {
		if err := questionService.Create(ctx, &questions[i]); err != nil {
			log.Printf("Failed to create question %q: %v", questions[i].Text, err)
		}
	}

	// 3. Seed customers through the same path the CSV import uses
	rows := []services.ImportRow{
		{Phone: "9876500001", Name: "Asha Verma", Products: "Solar Water Heater 100L"},
		{Phone: "9876500002", Name: "Rahul Nair", Products: "Solar Water Heater 200L; Rooftop Solar Panel 3kW"},
		{Phone: "9876500003", Name: "Meena Iyer", Products: "Heat Pump 150L"},
		{Phone: "9876500004", Name: "Vikram Singh", Products: "Rooftop Solar Panel 3kW"},
	}

	count, err := customerService.BulkImport(ctx, rows)
	if err != nil {
		log.Fatalf("Failed to import customers: %v", err)
	}

	log.Printf("Seeding completed: %d products, %d questions, %d customers", len(products), len(questions), count)
}
