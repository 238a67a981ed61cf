// simulate_decisions.go posts one scenario to the Arbiter API many times and
// prints how often each option was chosen.
//
// Usage:
//
//	go run scripts/simulate_decisions.go -scenario combat.yaml -api http://localhost:8700 -n 500
//
// A scenario file looks like:
//
//	profile: combat
//	fuzziness: 0.2
//	options:
//	  - name: attack
//	    measurements: {health: 80, ammo: 5}
//	  - name: flee
//	    measurements: {health: 20, ammo: 5}
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type option struct {
	Name         string             `yaml:"name" json:"name"`
	Measurements map[string]float64 `yaml:"measurements" json:"measurements"`
}

type scenario struct {
	Profile   string   `yaml:"profile" json:"profile,omitempty"`
	Mode      string   `yaml:"mode" json:"mode,omitempty"`
	Fuzziness *float64 `yaml:"fuzziness" json:"fuzziness,omitempty"`
	Options   []option `yaml:"options" json:"options"`
}

type decision struct {
	Chosen   string `json:"chosen"`
	Selected bool   `json:"selected"`
}

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "path to scenario YAML file")
	apiURL := flag.String("api", "http://localhost:8700", "Arbiter API base URL")
	clientID := flag.String("client", "simulator", "X-Client-ID header value")
	runs := flag.Int("n", 100, "number of decisions to request")
	dryRun := flag.Bool("dry-run", false, "print the request body without posting")
	flag.Parse()

	data, err := os.ReadFile(*scenarioPath)
	if err != nil {
		log.Fatalf("read scenario: %v", err)
	}
	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		log.Fatalf("parse scenario: %v", err)
	}
	body, err := json.Marshal(sc)
	if err != nil {
		log.Fatalf("encode scenario: %v", err)
	}

	log.Printf("loaded %d options from %s", len(sc.Options), *scenarioPath)

	if *dryRun {
		fmt.Println(string(body))
		return
	}

	client := &http.Client{}
	counts := make(map[string]int)
	failed := 0
	for i := 0; i < *runs; i++ {
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/decisions", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", *clientID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("run %d: %v", i+1, err)
			failed++
			continue
		}
		var d decision
		err = json.NewDecoder(resp.Body).Decode(&d)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated || err != nil {
			log.Printf("run %d: status %d", i+1, resp.StatusCode)
			failed++
			continue
		}
		if !d.Selected {
			counts["(none)"]++
			continue
		}
		counts[d.Chosen]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return counts[names[i]] > counts[names[j]] })
	for _, name := range names {
		fmt.Printf("%-20s %5d  %5.1f%%\n", name, counts[name], 100*float64(counts[name])/float64(*runs))
	}
	log.Printf("done: %d decisions, %d failed", *runs-failed, failed)
}
