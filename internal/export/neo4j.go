// Package export pushes an analysis run into a Neo4j database so the
// reference graph can be explored with Cypher.
package export

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"asmlens/internal/report"
)

// Neo4jExporter loads an assembly report into Neo4j using batch UNWIND
// queries.
type Neo4jExporter struct {
	driver neo4j.DriverWithContext
	ctx    context.Context
}

// NewNeo4jExporter connects to Neo4j and returns a ready-to-use exporter.
func NewNeo4jExporter(ctx context.Context, uri, user, password string) (*Neo4jExporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return &Neo4jExporter{driver: driver, ctx: ctx}, nil
}

// Close releases the underlying Neo4j driver resources.
func (e *Neo4jExporter) Close() {
	e.driver.Close(e.ctx)
}

// runCypher runs a single Cypher statement with optional parameters.
func (e *Neo4jExporter) runCypher(cypher string, params map[string]any) error {
	_, err := neo4j.ExecuteQuery(e.ctx, e.driver, cypher, params, neo4j.EagerResultTransformer)
	return err
}

// CleanGraph removes all previously exported assembly data.
func (e *Neo4jExporter) CleanGraph() error {
	log.Println("Cleaning existing assembly graph data...")
	queries := []string{
		"MATCH ()-[r:REFERENCES]->() DELETE r",
		"MATCH ()-[r:HAS_MEMBER]->() DELETE r",
		"MATCH ()-[r:EXTENDS]->() DELETE r",
		"MATCH (n:AsmType) DETACH DELETE n",
		"MATCH (n:AsmMember) DETACH DELETE n",
		"MATCH (n:ExternalMember) DETACH DELETE n",
	}
	for _, q := range queries {
		if err := e.runCypher(q, nil); err != nil {
			return err
		}
	}
	return nil
}

// CreateIndexes ensures the required Neo4j indexes exist.
func (e *Neo4jExporter) CreateIndexes() error {
	log.Println("Creating indexes...")
	indexes := []string{
		"CREATE INDEX asm_type_fullname IF NOT EXISTS FOR (n:AsmType) ON (n.full_name)",
		"CREATE INDEX asm_member_id IF NOT EXISTS FOR (n:AsmMember) ON (n.id)",
		"CREATE INDEX external_member_id IF NOT EXISTS FOR (n:ExternalMember) ON (n.id)",
	}
	for _, q := range indexes {
		if err := e.runCypher(q, nil); err != nil {
			return err
		}
	}
	return nil
}

// ExportReport loads the whole report: type nodes, member nodes, the
// inheritance edges between analyzed types, and every reference edge.
func (e *Neo4jExporter) ExportReport(r *report.AssemblyReport) error {
	if err := e.exportTypes(r); err != nil {
		return err
	}
	if err := e.exportMembers(r); err != nil {
		return err
	}
	return e.exportReferences(r)
}

func (e *Neo4jExporter) exportTypes(r *report.AssemblyReport) error {
	log.Printf("Loading %d types...", len(r.Types))
	batch := make([]map[string]any, 0, len(r.Types))
	for _, t := range r.Types {
		batch = append(batch, map[string]any{
			"full_name": t.FullName,
			"name":      t.Name,
			"namespace": t.Namespace,
			"category":  string(t.Category),
			"base_type": t.BaseType,
			"assembly":  r.Name,
			"form_text": t.FormText,
		})
	}
	if err := e.runCypher(
		`UNWIND $batch AS row
		 MERGE (n:AsmType {full_name: row.full_name})
		 SET n.name = row.name, n.namespace = row.namespace, n.category = row.category,
		     n.base_type = row.base_type, n.assembly = row.assembly, n.form_text = row.form_text`,
		map[string]any{"batch": batch},
	); err != nil {
		return err
	}

	// Inheritance edges between analyzed types.
	return e.runCypher(
		`UNWIND $batch AS row
		 MATCH (child:AsmType {full_name: row.full_name})
		 MATCH (base:AsmType {full_name: row.base_type})
		 MERGE (child)-[:EXTENDS]->(base)`,
		map[string]any{"batch": batch},
	)
}

func (e *Neo4jExporter) exportMembers(r *report.AssemblyReport) error {
	var batch []map[string]any
	for _, t := range r.Types {
		for _, group := range [][]*report.Member{t.Fields, t.Properties, t.Methods, t.Constructors, t.Events} {
			for _, m := range group {
				batch = append(batch, map[string]any{
					"id":   m.FullName,
					"name": m.Name,
					"kind": string(m.Kind),
					"type": t.FullName,
				})
			}
		}
	}
	log.Printf("Loading %d members...", len(batch))
	return e.runCypher(
		`UNWIND $batch AS row
		 MERGE (n:AsmMember {id: row.id})
		 SET n.name = row.name, n.kind = row.kind
		 WITH n, row
		 MATCH (t:AsmType {full_name: row.type})
		 MERGE (t)-[:HAS_MEMBER]->(n)`,
		map[string]any{"batch": batch},
	)
}

func (e *Neo4jExporter) exportReferences(r *report.AssemblyReport) error {
	var batch []map[string]any
	for _, t := range r.Types {
		for _, group := range [][]*report.Member{t.Methods, t.Constructors} {
			for _, m := range group {
				for _, edge := range m.Refs {
					batch = append(batch, map[string]any{
						"from": m.FullName,
						"to":   edge.Member,
						"kind": string(edge.Kind),
					})
				}
			}
		}
	}
	log.Printf("Loading %d reference edges...", len(batch))
	return e.runCypher(
		`UNWIND $batch AS row
		 MATCH (from:AsmMember {id: row.from})
		 OPTIONAL MATCH (internal:AsmMember {id: row.to})
		 FOREACH (_ IN CASE WHEN internal IS NOT NULL THEN [1] ELSE [] END |
		   MERGE (from)-[ref:REFERENCES {kind: row.kind}]->(internal))
		 FOREACH (_ IN CASE WHEN internal IS NULL THEN [1] ELSE [] END |
		   MERGE (ext:ExternalMember {id: row.to})
		   MERGE (from)-[ref:REFERENCES {kind: row.kind}]->(ext))`,
		map[string]any{"batch": batch},
	)
}
