package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Engine API",
        "description": "Conflict-graph coloring and cost-minimizing local search for weekly university timetabling",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    }
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "summary": "Authenticate user",
                "tags": ["Authentication"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/catalog/teachers": {
            "get": {
                "summary": "List teachers",
                "tags": ["Catalog"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Register a teacher",
                "tags": ["Catalog"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/catalog/subjects": {
            "get": {
                "summary": "List subjects",
                "tags": ["Catalog"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Register a subject",
                "tags": ["Catalog"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/catalog/groups": {
            "get": {
                "summary": "List groups",
                "tags": ["Catalog"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Register a group",
                "tags": ["Catalog"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/catalog/loads": {
            "post": {
                "summary": "Bind a subject to a teacher and group with a weekly-hour count",
                "tags": ["Catalog"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/catalog/events": {
            "get": {
                "summary": "Render the catalog as the Event list the scheduler consumes",
                "tags": ["Catalog"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/scheduler/run": {
            "post": {
                "summary": "Run the scheduler against the current catalog",
                "tags": ["Scheduler"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/scheduler/assignments": {
            "get": {
                "summary": "Return the current run's occurrence list",
                "tags": ["Scheduler"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/scheduler/conflicts": {
            "get": {
                "summary": "Return the current run's conflict-graph edges",
                "tags": ["Scheduler"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/scheduler/metrics": {
            "get": {
                "summary": "Return the current run's diagnostic metrics",
                "tags": ["Scheduler"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/scheduler/graph": {
            "get": {
                "summary": "Return the current run's conflict-graph summary",
                "tags": ["Scheduler"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/scheduler/matrix": {
            "get": {
                "summary": "Return the current run's dense conflict matrix",
                "tags": ["Scheduler"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/scheduler/history": {
            "get": {
                "summary": "List past run summaries",
                "tags": ["Scheduler"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/exports": {
            "post": {
                "summary": "Enqueue an export of the current run",
                "tags": ["Export"],
                "responses": {"202": {"description": "Accepted"}}
            }
        },
        "/api/v1/exports/{id}": {
            "get": {
                "summary": "Check an export job's status",
                "tags": ["Export"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/exports/download": {
            "get": {
                "summary": "Download a finished export via its signed token",
                "tags": ["Export"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
