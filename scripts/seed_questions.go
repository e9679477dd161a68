// Seeds the question catalog from a JSON file.
//
// Reseeding is idempotent: rows are matched on their id and updated in
// place, so the script can be re-run after editing the source file.
//
// Usage: go run scripts/seed_questions.go -file scripts/questions.json

package main

import (
	"encoding/json"
	"exam_quiz_backend/internal/config"
	"exam_quiz_backend/internal/model"
	"exam_quiz_backend/pkg/database"
	"flag"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm/clause"
)

func main() {
	file := flag.String("file", "scripts/questions.json", "path to the question JSON file")
	flag.Parse()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read question file: %v", err)
	}

	var questions []model.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		log.Fatalf("failed to parse question file: %v", err)
	}

	seeded := 0
	for _, q := range questions {
		if q.ID == "" || !q.ExamType.Valid() {
			log.Printf("skipping row with id %q: missing id or unknown exam type", q.ID)
			continue
		}
		if err := q.Validate(); err != nil {
			log.Printf("skipping question %s: %v", q.ID, err)
			continue
		}
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&q).Error; err != nil {
			log.Fatalf("failed to seed question %s: %v", q.ID, err)
		}
		seeded++
	}

	log.Printf("seeded %d of %d questions", seeded, len(questions))
}
