package neo4j

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	pkgneo4j "github.com/honeycarbs/hh-vacancies/pkg/neo4j"
)

// Ensure VacancyStore implements vacancy.Store
var _ vacancy.Store = (*VacancyStore)(nil)

// VacancyStore implements vacancy.Store with one :Vacancy node per identifier
type VacancyStore struct {
	client *pkgneo4j.Client
}

// NewVacancyStore creates a VacancyStore with a Neo4j client
func NewVacancyStore(client *pkgneo4j.Client) *VacancyStore {
	return &VacancyStore{
		client: client,
	}
}

const appendQuery = `
	MERGE (v:Vacancy {id: $id})
	ON CREATE SET v.title = $title,
	              v.url = $url,
	              v.raw = $raw,
	              v.storedAt = datetime(),
	              v.justCreated = true
	WITH v, v.justCreated IS NOT NULL AS created
	REMOVE v.justCreated
	WITH v, created
	FOREACH (name IN CASE WHEN $employer = "" THEN [] ELSE [$employer] END |
		MERGE (e:Employer {name: name})
		MERGE (v)-[:OFFERED_BY]->(e)
	)
	FOREACH (name IN CASE WHEN $region = "" THEN [] ELSE [$region] END |
		MERGE (r:Region {name: name})
		MERGE (v)-[:LOCATED_IN]->(r)
	)
	RETURN created
`

// AppendIfAbsent merges the vacancy node; the raw record is only written on creation
func (s *VacancyStore) AppendIfAbsent(ctx context.Context, v domain.Vacancy) (bool, error) {
	raw, err := json.Marshal(v.Raw())
	if err != nil {
		return false, &domain.StorageError{Op: "encode", Err: err}
	}

	params := map[string]any{
		"id":       v.ID,
		"title":    v.Title,
		"url":      "",
		"raw":      string(raw),
		"employer": "",
		"region":   "",
	}
	if v.URL != nil {
		params["url"] = *v.URL
	}
	if v.Employer != nil {
		params["employer"] = v.Employer.Name
	}
	if v.Region != nil {
		params["region"] = v.Region.Name
	}

	created, err := s.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, appendQuery, params)
		if err != nil {
			return false, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return false, err
		}
		val, _ := record.Get("created")
		created, _ := val.(bool)
		return created, nil
	})
	if err != nil {
		return false, &domain.StorageError{Op: "append", Err: fmt.Errorf("neo4j: %w", err)}
	}

	return created.(bool), nil
}

// ReadAll returns the stored raw records ordered by insertion time
func (s *VacancyStore) ReadAll(ctx context.Context) ([]domain.RawRecord, error) {
	query := `
		MATCH (v:Vacancy)
		RETURN v.raw AS raw
		ORDER BY v.storedAt, v.id
	`

	out, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		records := make([]domain.RawRecord, 0)
		for result.Next(ctx) {
			val, ok := result.Record().Get("raw")
			if !ok {
				continue
			}
			rawStr, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("vacancy raw property has type %T", val)
			}

			dec := json.NewDecoder(bytes.NewReader([]byte(rawStr)))
			dec.UseNumber()
			var rec map[string]any
			if err := dec.Decode(&rec); err != nil || rec == nil {
				return nil, fmt.Errorf("vacancy raw property is not a keyed record")
			}
			records = append(records, rec)
		}
		return records, result.Err()
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Err: fmt.Errorf("neo4j: %w", err)}
	}

	return out.([]domain.RawRecord), nil
}

// Delete detaches and removes the vacancy node
func (s *VacancyStore) Delete(ctx context.Context, id string) (bool, error) {
	query := `
		MATCH (v:Vacancy {id: $id})
		DETACH DELETE v
	`

	deleted, err := s.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{"id": id})
		if err != nil {
			return false, err
		}
		summary, err := result.Consume(ctx)
		if err != nil {
			return false, err
		}
		return summary.Counters().NodesDeleted() > 0, nil
	})
	if err != nil {
		return false, &domain.StorageError{Op: "delete", Err: fmt.Errorf("neo4j: %w", err)}
	}

	return deleted.(bool), nil
}
