package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/authsvc"
	"github.com/obraseguro/backend/pkg/store"
)

// Seeds a demo gestor, engineer, obra and checklist template so a fresh
// environment has something to click through. Run with:
//
//	go run scripts/seed_demo.go
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	auth := authsvc.NewService(db)

	gestor, err := auth.Register(authsvc.RegisterInput{
		Email:    "gestor@demo.local",
		Password: "demo1234",
		FullName: "Gestor Demo",
		Role:     models.RoleGestor,
	})
	if err != nil {
		log.Fatal("Failed to create demo gestor:", err)
	}

	engineer, err := auth.Register(authsvc.RegisterInput{
		Email:    "engenheiro@demo.local",
		Password: "demo1234",
		FullName: "Engenheiro Demo",
		Role:     models.RoleEngenheiro,
	})
	if err != nil {
		log.Fatal("Failed to create demo engineer:", err)
	}

	lat, lng := -23.5505, -46.6333
	obra, err := store.NewObraStore(db).Create(gestor.ID, store.ObraInput{
		Name:      "Obra Demo Centro",
		Address:   "Av. Paulista, 1000 - São Paulo",
		Latitude:  &lat,
		Longitude: &lng,
	})
	if err != nil {
		log.Fatal("Failed to create demo obra:", err)
	}

	if _, err := store.NewAssignmentStore(db).Grant(obra.ID, engineer.ID); err != nil {
		log.Fatal("Failed to assign demo engineer:", err)
	}

	tpl, err := store.NewTemplateStore(db).CreateWithItems(obra.ID, store.TemplateInput{
		Name:        "Inspeção Diária de Segurança",
		Description: "Checklist básico de início de turno",
		Items: []store.TemplateItemInput{
			{Title: "Extintores no lugar e dentro da validade", Order: 0},
			{Title: "Sinalização de emergência visível", Order: 1},
			{Title: "EPIs disponíveis para a equipe", Order: 2},
			{Title: "Andaimes travados e inspecionados", Order: 3},
		},
	})
	if err != nil {
		log.Fatal("Failed to create demo template:", err)
	}

	fmt.Println("Demo data ready:")
	fmt.Printf("  gestor:     %s / demo1234\n", gestor.Email)
	fmt.Printf("  engenheiro: %s / demo1234\n", engineer.Email)
	fmt.Printf("  obra:       #%d %s\n", obra.ID, obra.Name)
	fmt.Printf("  checklist:  #%d %s (%d itens)\n", tpl.ID, tpl.Name, len(tpl.Items))
}
