// Seed script for loading sample HR policy passages into the vector index.
// Run with: go run ./scripts/seed.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/JothiRam-cm/elevix/internal/config"
	"github.com/JothiRam-cm/elevix/internal/embedding"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS hr_passages (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	source_file TEXT NOT NULL,
	file_type TEXT NOT NULL DEFAULT 'text',
	location TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	embedding vector(1536),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

type seedPassage struct {
	sourceFile string
	fileType   string
	location   string
	content    string
}

var passages = []seedPassage{
	{"leave_policy.md", "markdown", "Annual Leave", "Full-time employees accrue 24 days of paid annual leave per calendar year. Unused leave up to 5 days may be carried over to the next year."},
	{"leave_policy.md", "markdown", "Sick Leave", "Employees are entitled to 12 days of paid sick leave per year. A medical certificate is required for absences longer than 2 consecutive days."},
	{"leave_policy.md", "markdown", "Maternity Leave", "Maternity leave is 12 weeks, fully paid. An additional 4 weeks of unpaid leave may be requested with manager approval."},
	{"benefits_guide.md", "markdown", "Health Insurance", "The company covers 100% of the employee health insurance premium and 50% for dependents. Enrollment happens within 30 days of joining."},
	{"benefits_guide.md", "markdown", "Reimbursements", "Work-related expenses are reimbursed within two payroll cycles when submitted with receipts through the expense portal."},
	{"payroll_handbook.md", "markdown", "Pay Schedule", "Salaries are paid on the last working day of each month. Payslips are available in the HR portal on payday."},
	{"approvals.md", "markdown", "Leave Approvals", "Leave requests are approved by the direct manager. Requests longer than 10 consecutive working days also require HR approval."},
}

func main() {
	envFile := os.Getenv("ELEVIX_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	embedder, err := embedding.NewClient(config.EmbeddingProvider(), config.EmbeddingAPIKey())
	if err != nil {
		log.Fatalf("failed to create embedding client: %v", err)
	}

	for _, p := range passages {
		vec, err := embedder.Embed(ctx, p.content)
		if err != nil {
			log.Fatalf("failed to embed passage %q: %v", p.location, err)
		}

		v := pgvector.NewVector(vec)
		_, err = pool.Exec(ctx,
			`INSERT INTO hr_passages (source_file, file_type, location, content, embedding)
			 VALUES ($1, $2, $3, $4, $5)`,
			p.sourceFile, p.fileType, p.location, p.content, v,
		)
		if err != nil {
			log.Fatalf("failed to insert passage %q: %v", p.location, err)
		}
		fmt.Printf("seeded %s (%s)\n", p.sourceFile, p.location)
	}

	fmt.Printf("done: %d passages\n", len(passages))
}
