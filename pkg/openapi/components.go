package openapi

import "maps"

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {
				Schema: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"error": {Type: "string", Description: "Error message"},
					},
				},
			},
		},
	}
}

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Window": {
				Type: "object",
				Properties: map[string]*Schema{
					"skip":  {Type: "integer", Description: "Records to skip after ordering", Example: 0},
					"limit": {Type: "integer", Description: "Maximum records to return", Example: 100},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":          errorResponse("Invalid request"),
			"NotFound":            errorResponse("Resource not found"),
			"Conflict":            errorResponse("Resource conflict (duplicate record)"),
			"PayloadTooLarge":     errorResponse("Upload exceeds the maximum allowed size"),
			"UnprocessableEntity": errorResponse("Missing or malformed request field"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
