package api

import (
	"github.com/JaimeStill/stipend/internal/config"
	"github.com/JaimeStill/stipend/pkg/openapi"
)

// BuildSpec constructs the OpenAPI document for the payslip API and returns
// its serialized JSON.
func BuildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.Docs.Title, cfg.Version)
	spec.SetDescription(cfg.API.Docs.Description)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Payslip": payslipSchema(),
		"Message": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message": {Type: "string"},
			},
		},
	})

	base := cfg.API.BasePath
	tags := []string{"payslips"}

	spec.Paths[base] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List payslips",
			Tags:    tags,
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("employee_id", "integer", "Filter by employee", false),
				openapi.QueryParam("year", "integer", "Filter by year", false),
				openapi.QueryParam("month", "integer", "Filter by month", false),
				openapi.QueryParam("filename", "string", "Filter by filename substring", false),
				openapi.QueryParam("skip", "integer", "Records to skip after ordering", false),
				openapi.QueryParam("limit", "integer", "Maximum records to return", false),
			},
			Responses: map[int]*openapi.Response{
				200: {
					Description: "Payslips ordered by upload time, newest first",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type:  "array",
								Items: openapi.SchemaRef("Payslip"),
							},
						},
					},
				},
				422: openapi.ResponseRef("UnprocessableEntity"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Upload a payslip",
			Tags:    tags,
			RequestBody: &openapi.RequestBody{
				Required: true,
				Content: map[string]*openapi.MediaType{
					"multipart/form-data": {Schema: uploadSchema()},
				},
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Registered payslip record", "Payslip"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
				413: openapi.ResponseRef("PayloadTooLarge"),
				422: openapi.ResponseRef("UnprocessableEntity"),
			},
		},
	}

	spec.Paths[base+"/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get a payslip by id",
			Tags:    tags,
			Parameters: []*openapi.Parameter{
				openapi.PathParam("id", "Payslip record id"),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Payslip record", "Payslip"),
				404: openapi.ResponseRef("NotFound"),
				422: openapi.ResponseRef("UnprocessableEntity"),
			},
		},
		Delete: &openapi.Operation{
			Summary: "Delete a payslip",
			Tags:    tags,
			Parameters: []*openapi.Parameter{
				openapi.PathParam("id", "Payslip record id"),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Deletion confirmation", "Message"),
				404: openapi.ResponseRef("NotFound"),
				422: openapi.ResponseRef("UnprocessableEntity"),
			},
		},
	}

	return openapi.MarshalJSON(spec)
}

func payslipSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":               {Type: "integer", Format: "int64"},
			"employee_id":      {Type: "integer"},
			"month":            {Type: "integer", Example: 6},
			"year":             {Type: "integer", Example: 2025},
			"filename":         {Type: "string", Example: "june-2025.pdf"},
			"file_url":         {Type: "string"},
			"file_size":        {Type: "integer", Format: "int64"},
			"upload_timestamp": {Type: "string", Format: "date-time"},
		},
		Required: []string{"id", "employee_id", "month", "year", "filename", "file_url", "upload_timestamp"},
	}
}

func uploadSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"file":        {Type: "string", Format: "binary", Description: "PDF document"},
			"employee_id": {Type: "integer"},
			"month":       {Type: "integer"},
			"year":        {Type: "integer"},
		},
		Required: []string{"file", "employee_id", "month", "year"},
	}
}
