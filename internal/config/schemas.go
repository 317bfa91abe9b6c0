package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"claimsview/internal/query"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchema is returned for schema files the engine cannot use.
var ErrInvalidSchema = errors.New("invalid resource schema")

type schemaFile struct {
	Resources []query.Schema `yaml:"resources"`
}

// LoadSchemas reads resource schemas from a YAML file. An empty path yields
// the built-in schemas.
func LoadSchemas(path string) ([]query.Schema, error) {
	if path == "" {
		return DefaultSchemas(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	schemas, err := ParseSchemas(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schemas, nil
}

// ParseSchemas decodes a YAML document of the form `resources: [...]`.
// Unknown keys are rejected so typos surface at startup.
func ParseSchemas(data []byte) ([]query.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file schemaFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode schemas: %w", err)
	}
	if len(file.Resources) == 0 {
		return nil, fmt.Errorf("no resources declared: %w", ErrInvalidSchema)
	}

	seen := make(map[string]bool, len(file.Resources))
	out := make([]query.Schema, 0, len(file.Resources))
	for i, s := range file.Resources {
		if s.Resource == "" {
			return nil, fmt.Errorf("resource #%d has no name: %w", i+1, ErrInvalidSchema)
		}
		if seen[s.Resource] {
			return nil, fmt.Errorf("resource %q declared twice: %w", s.Resource, ErrInvalidSchema)
		}
		if s.DefaultSort != "" && !s.DefaultSort.Valid() {
			return nil, fmt.Errorf("resource %q: unknown default_sort %q: %w", s.Resource, s.DefaultSort, ErrInvalidSchema)
		}
		for _, col := range s.ExportColumns {
			switch col.Kind {
			case "", query.ColumnText, query.ColumnAmount, query.ColumnDate:
			default:
				return nil, fmt.Errorf("resource %q: column %q has unknown kind %q: %w", s.Resource, col.Header, col.Kind, ErrInvalidSchema)
			}
		}
		seen[s.Resource] = true
		out = append(out, s.WithDefaults())
	}
	return out, nil
}

// MarshalSchemas renders schemas in the file format LoadSchemas reads.
func MarshalSchemas(schemas []query.Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(schemaFile{Resources: schemas}); err != nil {
		return nil, fmt.Errorf("encode schemas: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode schemas: %w", err)
	}
	return buf.Bytes(), nil
}

var providerRoles = []string{"DOCTOR", "PHARMACIST", "LABORATORY", "RADIOLOGIST"}

// DefaultSchemas describes the resources of the claims backend.
func DefaultSchemas() []query.Schema {
	schemas := []query.Schema{
		{
			Resource:      "claims",
			SearchFields:  []string{"client_name", "id", "diagnosis", "provider_name"},
			NameField:     "client_name",
			CategoryField: "provider_role",
			Categories:    providerRoles,
			StatusField:   "status",
			Statuses:      []string{"PENDING", "APPROVED_FINAL", "RETURNED", "REJECTED_FINAL"},
			DateFields:    []string{"decision_date", "submission_date", "created_at"},
			AmountField:   "amount",
			DefaultSort:   query.SortDateDesc,
			ExportColumns: []query.ColumnSpec{
				{Header: "Claim ID", Field: "id", Kind: query.ColumnText},
				{Header: "Client", Field: "client_name", Kind: query.ColumnText},
				{Header: "Provider", Field: "provider_name", Kind: query.ColumnText},
				{Header: "Role", Field: "provider_role", Kind: query.ColumnText},
				{Header: "Diagnosis", Field: "diagnosis", Kind: query.ColumnText},
				{Header: "Status", Field: "status", Kind: query.ColumnText},
				{Header: "Amount", Field: "amount", Kind: query.ColumnAmount, Placeholder: "0.00"},
				{Header: "Submitted", Field: "submission_date", Kind: query.ColumnDate},
				{Header: "Decided", Field: "decision_date", Kind: query.ColumnDate},
			},
		},
		{
			Resource:      "clients",
			SearchFields:  []string{"full_name", "email", "policy_number"},
			NameField:     "full_name",
			CategoryField: "role",
			Categories:    []string{"POLICYHOLDER", "DEPENDENT"},
			StatusField:   "status",
			Statuses:      []string{"ACTIVE", "INACTIVE"},
			StatusRank:    []string{"ACTIVE", "INACTIVE"},
			DateFields:    []string{"created_at"},
			DefaultSort:   query.SortNameAsc,
			ExportColumns: []query.ColumnSpec{
				{Header: "Name", Field: "full_name", Kind: query.ColumnText},
				{Header: "Email", Field: "email", Kind: query.ColumnText},
				{Header: "Role", Field: "role", Kind: query.ColumnText},
				{Header: "Policy", Field: "policy_number", Kind: query.ColumnText},
				{Header: "Joined", Field: "created_at", Kind: query.ColumnDate},
			},
		},
		{
			Resource:      "providers",
			SearchFields:  []string{"name", "city", "license_number"},
			NameField:     "name",
			CategoryField: "role",
			Categories:    providerRoles,
			StatusField:   "status",
			Statuses:      []string{"APPROVED", "PENDING", "REJECTED"},
			DateFields:    []string{"registered_at"},
			DefaultSort:   query.SortNameAsc,
			ExportColumns: []query.ColumnSpec{
				{Header: "Name", Field: "name", Kind: query.ColumnText},
				{Header: "Role", Field: "role", Kind: query.ColumnText},
				{Header: "City", Field: "city", Kind: query.ColumnText},
				{Header: "Status", Field: "status", Kind: query.ColumnText},
				{Header: "Registered", Field: "registered_at", Kind: query.ColumnDate},
			},
		},
		{
			Resource:      "provider-expenses",
			Path:          "providers/expenses",
			SearchFields:  []string{"provider_name", "description"},
			NameField:     "provider_name",
			CategoryField: "provider_role",
			Categories:    providerRoles,
			StatusField:   "status",
			DateFields:    []string{"expense_date", "created_at"},
			AmountField:   "amount",
			DefaultSort:   query.SortAmountDesc,
			SliderStep:    100,
			ExportColumns: []query.ColumnSpec{
				{Header: "Provider", Field: "provider_name", Kind: query.ColumnText},
				{Header: "Role", Field: "provider_role", Kind: query.ColumnText},
				{Header: "Description", Field: "description", Kind: query.ColumnText},
				{Header: "Amount", Field: "amount", Kind: query.ColumnAmount, Placeholder: "0.00"},
				{Header: "Date", Field: "expense_date", Kind: query.ColumnDate},
			},
		},
		{
			Resource:      "notifications",
			SearchFields:  []string{"title", "message"},
			NameField:     "title",
			CategoryField: "kind",
			StatusField:   "status",
			Statuses:      []string{"UNREAD", "READ"},
			StatusRank:    []string{"UNREAD", "READ"},
			DateFields:    []string{"created_at"},
			DefaultSort:   query.SortDateDesc,
		},
	}

	for i := range schemas {
		schemas[i] = schemas[i].WithDefaults()
	}
	return schemas
}
