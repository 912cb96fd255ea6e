// seed_properties.go — standalone script to parse a CSV of candidate homes and
// seed them via the haven API.
//
// CSV columns: address, listingUrl, price, beds, baths, sqFt, notes, then one
// column per category score in registry order (priceFit, resalePotential,
// condition, layout, location, schools, commute, emotionalPull).
//
// Usage:
//
//	go run scripts/seed_properties.go -csv /path/to/homes.csv -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

var categoryColumns = []string{
	"priceFit", "resalePotential", "condition", "layout",
	"location", "schools", "commute", "emotionalPull",
}

type propertyRequest struct {
	Address    string             `json:"address"`
	ListingURL string             `json:"listingUrl,omitempty"`
	Price      float64            `json:"price"`
	Beds       int                `json:"beds"`
	Baths      float64            `json:"baths"`
	SqFt       float64            `json:"sqFt"`
	Notes      string             `json:"notes,omitempty"`
	Scores     map[string]float64 `json:"scores"`
}

func main() {
	csvPath := flag.String("csv", "homes.csv", "path to CSV file")
	apiURL := flag.String("api", "http://localhost:8700", "haven API base URL")
	dryRun := flag.Bool("dry-run", false, "print properties without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}

	var properties []propertyRequest
	for i, row := range rows {
		// Skip a header row if present
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "address") {
			continue
		}
		if len(row) < 7+len(categoryColumns) {
			log.Printf("skip row %d: %d columns, need %d", i+1, len(row), 7+len(categoryColumns))
			continue
		}

		p := propertyRequest{
			Address:    strings.TrimSpace(row[0]),
			ListingURL: strings.TrimSpace(row[1]),
			Notes:      strings.TrimSpace(row[6]),
			Scores:     make(map[string]float64, len(categoryColumns)),
		}
		p.Price, _ = strconv.ParseFloat(row[2], 64)
		p.Beds, _ = strconv.Atoi(row[3])
		p.Baths, _ = strconv.ParseFloat(row[4], 64)
		p.SqFt, _ = strconv.ParseFloat(row[5], 64)

		ok := true
		for j, key := range categoryColumns {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[7+j]), 64)
			if err != nil || v < 1 || v > 10 {
				log.Printf("skip row %d: bad %s score %q", i+1, key, row[7+j])
				ok = false
				break
			}
			p.Scores[key] = v
		}
		if !ok || p.Address == "" {
			continue
		}
		properties = append(properties, p)
	}

	log.Printf("parsed %d properties from %s", len(properties), *csvPath)

	if *dryRun {
		for i, p := range properties {
			fmt.Printf("[%d] %s (price=%.0f, beds=%d, baths=%.1f, sqFt=%.0f)\n",
				i+1, p.Address, p.Price, p.Beds, p.Baths, p.SqFt)
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, p := range properties {
		body, _ := json.Marshal(p)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/properties", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", p.Address, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", p.Address, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip %q: status %d", p.Address, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
