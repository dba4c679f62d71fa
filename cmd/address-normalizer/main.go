package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
	postal "github.com/openvenues/gopostal/parser"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/config"
)

const version = "1.0.0"

func main() {
	var (
		command = flag.String("cmd", "", "Command: test-parse, normalize, stats")
		address = flag.String("address", "", "Single address to test parsing")
		limit   = flag.Int("limit", 1000, "Number of properties to process (0 = all)")
	)
	flag.Parse()

	if *command == "" {
		printUsage()
		return
	}

	fmt.Printf("Property Address Normalizer v%s\n", version)
	fmt.Println("Canonicalizes property street addresses with libpostal")
	fmt.Println()

	cfg := config.Load()

	var err error
	switch *command {
	case "test-parse":
		if *address == "" {
			fmt.Println("Error: -address required for test-parse")
			return
		}
		testParse(*address)
	case "normalize":
		var db *sql.DB
		db, err = sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		err = normalizeProperties(db, *limit)
	case "stats":
		var db *sql.DB
		db, err = sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		err = showStats(db)
	default:
		fmt.Printf("Unknown command: %s\n", *command)
		printUsage()
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  Test parse single address:")
	fmt.Println("    ./address-normalizer -cmd=test-parse -address=\"46230 Lexwood Dr, Lexington Park, MD 20653\"")
	fmt.Println()
	fmt.Println("  Normalize stored property addresses:")
	fmt.Println("    ./address-normalizer -cmd=normalize -limit=1000")
	fmt.Println()
	fmt.Println("  Show normalization statistics:")
	fmt.Println("    ./address-normalizer -cmd=stats")
}

// testParse prints the parsed components of one address
func testParse(address string) {
	fmt.Printf("Input: %s\n\n", address)

	components := postal.ParseAddress(address)
	fmt.Println("Components:")
	for _, component := range components {
		fmt.Printf("  %-15s: %s\n", component.Label, component.Value)
	}

	street, city, zip := extractLocation(components)
	fmt.Println("\nCanonical location:")
	fmt.Printf("  Street: %s\n", street)
	fmt.Printf("  City:   %s\n", city)
	fmt.Printf("  Zip:    %s\n", zip)
}

// extractLocation reduces parsed components to the street/city/zip triple
// stored on properties. The street is house number plus road; unit and level
// are appended when present.
func extractLocation(components []postal.ParsedComponent) (street, city, zip string) {
	fields := make(map[string]string)
	for _, comp := range components {
		fields[comp.Label] = comp.Value
	}

	parts := []string{}
	if fields["house_number"] != "" {
		parts = append(parts, fields["house_number"])
	}
	if fields["road"] != "" {
		parts = append(parts, fields["road"])
	}
	if fields["unit"] != "" {
		parts = append(parts, fields["unit"])
	}
	street = strings.Join(parts, " ")
	city = fields["city"]
	zip = fields["postcode"]
	return street, city, zip
}

// normalizeProperties rewrites property street/city/zip fields with their
// libpostal canonical forms
func normalizeProperties(db *sql.DB, limit int) error {
	fmt.Println("Normalizing property addresses...")
	startTime := time.Now()

	query := `
		SELECT id, street, city, zip_code
		FROM property
		WHERE street != ''
		ORDER BY id
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	type record struct {
		id, street, city, zip string
	}
	var records []record
	for rows.Next() {
		var r record
		if err := rows.Scan(&r.id, &r.street, &r.city, &r.zip); err != nil {
			return fmt.Errorf("failed to scan property: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	updated := 0
	for _, r := range records {
		full := r.street
		if r.city != "" {
			full += ", " + r.city
		}
		if r.zip != "" {
			full += " " + r.zip
		}

		street, city, zip := extractLocation(postal.ParseAddress(full))
		if street == "" {
			continue
		}
		if city == "" {
			city = r.city
		}
		if zip == "" {
			zip = r.zip
		}
		if street == r.street && city == r.city && zip == r.zip {
			continue
		}

		_, err := db.Exec(
			"UPDATE property SET street = $1, city = $2, zip_code = $3, updated_at = now() WHERE id = $4",
			street, city, zip, r.id)
		if err != nil {
			return fmt.Errorf("failed to update property %s: %w", r.id, err)
		}
		updated++
	}

	fmt.Printf("Processed %d properties, updated %d, in %v\n",
		len(records), updated, time.Since(startTime).Round(time.Millisecond))
	return nil
}

// showStats reports address completeness over the property table
func showStats(db *sql.DB) error {
	var total, withStreet, withZip int
	err := db.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(CASE WHEN street != '' THEN 1 END),
			COUNT(CASE WHEN zip_code != '' THEN 1 END)
		FROM property
	`).Scan(&total, &withStreet, &withZip)
	if err != nil {
		return fmt.Errorf("failed to query stats: %w", err)
	}

	fmt.Printf("Properties:   %d\n", total)
	fmt.Printf("With street:  %d\n", withStreet)
	fmt.Printf("With zip:     %d\n", withZip)
	return nil
}
