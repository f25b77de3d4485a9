//go:build datagen_shepard
// +build datagen_shepard

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"shepardviz/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

// Fake ShepardDB + Keycloak server for local development. Serves a randomly
// generated dataset over the same routes the real source exposes, so the
// server binary can run without any external infrastructure:
//
//	go run -tags datagen_shepard datagen_shepard.go -port 9090
//	SHEPARD_HOST=http://localhost:9090 KEYCLOAK_URL=http://localhost:9090 ...

var categories = []string{"Experiment", "Sample", "Measurement", "Simulation", "Report"}

var relationships = []string{"derived_from", "measured_by", "calibrates", "supersedes", "documents"}

type dataset struct {
	collections []entities.Collection
	entitiesBy  map[string][]entities.Entity
	refsBy      map[string][]entities.Reference
}

func generateDataset(collections, entitiesPerCollection, maxDepth, refsPerEntity int) dataset {
	ds := dataset{
		entitiesBy: make(map[string][]entities.Entity),
		refsBy:     make(map[string][]entities.Reference),
	}

	for i := 0; i < collections; i++ {
		now := time.Now().UTC()
		collection := entities.Collection{
			ID:   gofakeit.UUID(),
			Name: gofakeit.AppName(),
			Attributes: map[string]string{
				"category": "Collection",
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		ds.collections = append(ds.collections, collection)

		// Entities are generated in order, so a parent always precedes its
		// children in the flat list.
		byDepth := make(map[int][]string)
		list := make([]entities.Entity, 0, entitiesPerCollection)

		for j := 0; j < entitiesPerCollection; j++ {
			entity := entities.Entity{
				ID:   gofakeit.UUID(),
				Name: gofakeit.ProductName(),
				Attributes: map[string]string{
					"category": categories[rand.Intn(len(categories))],
				},
				CreatedAt: now,
				UpdatedAt: now,
			}

			depth := 0
			if j > 0 && rand.Float32() < 0.7 {
				parentDepth := rand.Intn(maxDepth)
				for parentDepth >= 0 {
					if candidates := byDepth[parentDepth]; len(candidates) > 0 {
						parentID := candidates[rand.Intn(len(candidates))]
						entity.ParentID = &parentID
						depth = parentDepth + 1
						break
					}
					parentDepth--
				}
			}

			byDepth[depth] = append(byDepth[depth], entity.ID)
			list = append(list, entity)
		}

		ds.entitiesBy[collection.ID] = list

		// Cross-references, including an occasional dangling target.
		for _, entity := range list {
			numRefs := rand.Intn(refsPerEntity + 1)
			for r := 0; r < numRefs; r++ {
				targetID := list[rand.Intn(len(list))].ID
				if rand.Float32() < 0.05 {
					targetID = gofakeit.UUID()
				}

				ds.refsBy[entity.ID] = append(ds.refsBy[entity.ID], entities.Reference{
					SourceID:     entity.ID,
					TargetID:     targetID,
					Relationship: relationships[rand.Intn(len(relationships))],
				})
			}
		}
	}

	return ds
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func main() {
	rand.Seed(time.Now().UnixNano())

	port := flag.Int("port", 9090, "Port to listen on")
	numCollections := flag.Int("collections", 5, "Number of collections to generate")
	entitiesPerCollection := flag.Int("entities", 200, "Number of entities per collection")
	maxDepth := flag.Int("max-depth", 6, "Maximum hierarchy depth")
	refsPerEntity := flag.Int("refs", 2, "Maximum references per entity")
	flag.Parse()

	ds := generateDataset(*numCollections, *entitiesPerCollection, *maxDepth, *refsPerEntity)

	totalEntities := 0
	for _, list := range ds.entitiesBy {
		totalEntities += len(list)
	}
	log.Printf("Generated %d collections with %d entities total", len(ds.collections), totalEntities)

	mux := http.NewServeMux()

	// Keycloak token endpoint stub. Accepts any credentials.
	mux.HandleFunc("POST /realms/{realm}/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"access_token": gofakeit.UUID(),
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("GET /api/collections", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, ds.collections)
	})

	mux.HandleFunc("GET /api/collections/{id}/dataObjects", func(w http.ResponseWriter, r *http.Request) {
		list, ok := ds.entitiesBy[r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, list)
	})

	mux.HandleFunc("GET /api/collections/{id}/dataObjects/{oid}/references", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ds.entitiesBy[r.PathValue("id")]; !ok {
			http.NotFound(w, r)
			return
		}
		refs := ds.refsBy[r.PathValue("oid")]
		if refs == nil {
			refs = []entities.Reference{}
		}
		writeJSON(w, refs)
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Fake ShepardDB listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
