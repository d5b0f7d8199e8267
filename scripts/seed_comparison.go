// seed_comparison.go posts a comparison to a running Coverage service.
// Without -in it seeds the built-in five model example.
//
// Usage:
//
//	go run scripts/seed_comparison.go -api http://localhost:8700 -client system
//	go run scripts/seed_comparison.go -in models.yaml -name "nightly eval"
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
)

type comparisonRequest struct {
	Name   string           `json:"name"`
	Source string           `json:"source"`
	Points []analysis.Point `json:"points"`
}

type comparisonResponse struct {
	ID       string `json:"comparison_id"`
	Revision int    `json:"revision"`
	Analysis struct {
		Frontier []analysis.Point `json:"frontier"`
	} `json:"analysis"`
}

func main() {
	apiURL := flag.String("api", "http://localhost:8700", "Coverage API base URL")
	clientID := flag.String("client", "system", "X-Client-ID header value")
	name := flag.String("name", "example", "comparison name")
	inPath := flag.String("in", "", "YAML points file (list of {model, x, y})")
	dryRun := flag.Bool("dry-run", false, "print the request without posting")
	flag.Parse()

	points := analysis.ExamplePoints()
	if *inPath != "" {
		data, err := os.ReadFile(*inPath)
		if err != nil {
			log.Fatalf("read points: %v", err)
		}
		points = nil
		if err := yaml.Unmarshal(data, &points); err != nil {
			log.Fatalf("parse points: %v", err)
		}
	}

	if err := analysis.Validate(points); err != nil {
		log.Fatalf("invalid points: %v", err)
	}

	req := comparisonRequest{Name: *name, Source: "seed", Points: points}
	body, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("encode request: %v", err)
	}

	if *dryRun {
		for i, p := range points {
			fmt.Printf("[%d] %s (fpr=%.3f, tpr=%.3f)\n", i+1, p.Model, p.X, p.Y)
		}
		return
	}

	httpReq, err := http.NewRequest("POST", *apiURL+"/api/v1/comparisons", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Client-ID", *clientID)

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		log.Fatalf("post comparison: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("post comparison: status %d", resp.StatusCode)
	}

	var created comparisonResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Fatalf("decode response: %v", err)
	}
	log.Printf("created comparison %s (revision %d, %d points, %d on frontier)",
		created.ID, created.Revision, len(points), len(created.Analysis.Frontier))
}
