// seed crea el usuario admin inicial y un catálogo base de productos de
// clínica para ambientes de desarrollo.
//
// Uso: go run ./cmd/seed
// Las credenciales salen de SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD
// (por defecto admin@clinova.local / admin12345).
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/infrastructure/postgres"
	"github.com/clinova/clinica-api/pkg/config"
	"github.com/clinova/clinica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	email := envOr("SEED_ADMIN_EMAIL", "admin@clinova.local")
	password := envOr("SEED_ADMIN_PASSWORD", "admin12345")

	clinicianRepo := postgres.NewClinicianRepository(pool)
	existing, err := clinicianRepo.GetByEmail(email)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password")
		}
		now := time.Now()
		admin := &entity.Clinician{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			FullName:     "Administrador",
			Role:         entity.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := clinicianRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", email).Msg("admin creado")
	} else {
		log.Info().Str("email", email).Msg("admin ya existe, omitiendo")
	}

	productRepo := postgres.NewProductRepository(pool)
	seedProducts := []entity.Product{
		{Name: "Bótox vial 100U", UnitMeasure: "vial", Price: decimal.NewFromInt(350), RequiresLotTracking: true, DeductsStock: true},
		{Name: "Ácido hialurónico 1ml", UnitMeasure: "jeringa", Price: decimal.NewFromInt(280), RequiresLotTracking: true, DeductsStock: true},
		{Name: "Crema post-tratamiento", UnitMeasure: "unidad", Price: decimal.NewFromInt(45), RequiresLotTracking: false, DeductsStock: true},
		{Name: "Consulta de valoración", UnitMeasure: "sesión", Price: decimal.NewFromInt(60), RequiresLotTracking: false, DeductsStock: false},
	}
	created := 0
	for _, p := range seedProducts {
		now := time.Now()
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := productRepo.Create(&p); err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			log.Fatal().Err(err).Str("product", p.Name).Msg("crear producto")
		}
		created++
	}
	log.Info().Int("products", created).Msg("catálogo base sembrado")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
