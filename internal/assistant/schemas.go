package assistant

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

func getDataSchema(kind Kind) *gojsonschema.Schema {
	switch kind {
	case KindCreateTask:
		return createTaskSchema
	case KindCreateProject:
		return createProjectSchema
	case KindCreateClient:
		return createClientSchema
	default:
		return nil
	}
}

var (
	createTaskSchema    = mustSchema(createTaskDataSchema)
	createProjectSchema = mustSchema(createProjectDataSchema)
	createClientSchema  = mustSchema(createClientDataSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile intent schema: %v", err))
	}
	return schema
}

// Priority and status stay free-form strings here: unknown values fall back
// to defaults at dispatch instead of rejecting the whole intent.
const createTaskDataSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "title": { "type": "string" },
    "description": { "type": ["string", "null"] },
    "project_id": { "type": ["string", "null"] },
    "priority": { "type": ["string", "null"] }
  },
  "required": ["title"]
}`

const createProjectDataSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": { "type": "string" },
    "description": { "type": ["string", "null"] },
    "status": { "type": ["string", "null"] }
  },
  "required": ["name"]
}`

const createClientDataSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": { "type": "string" },
    "email": { "type": ["string", "null"] },
    "company": { "type": ["string", "null"] },
    "phone": { "type": ["string", "null"] }
  },
  "required": ["name"]
}`
