// Package docs holds the swagger spec served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o cmd/api/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/preprocess": {
            "post": {
                "description": "Collapses whitespace and composes Unicode in raw OCR text",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["text"],
                "summary": "Normalize text",
                "parameters": [
                    {"description": "Raw text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PreprocessTextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PreprocessTextResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}}
                }
            }
        },
        "/generate_quiz": {
            "post": {
                "description": "Builds fill-in-the-blank multiple choice questions. Fewer questions than requested may be returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate a quiz from text",
                "parameters": [
                    {"description": "Source text and question count", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GenerateQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GenerateQuizResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/process_image": {
            "post": {
                "description": "Cleans the photographed page and runs OCR on it",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["image"],
                "summary": "Extract text from a page image",
                "parameters": [
                    {"type": "file", "description": "Page image", "name": "image", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Report the detected skew angle", "name": "debug", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProcessImageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/preprocess_image": {
            "post": {
                "description": "Returns the cleaned binary image that OCR would see",
                "consumes": ["multipart/form-data"],
                "produces": ["image/png"],
                "tags": ["image"],
                "summary": "Preprocess a page image",
                "parameters": [
                    {"type": "file", "description": "Page image", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quiz_results": {
            "get": {
                "description": "Returns the stored quizzes of a user, newest first, without questions",
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "List a user's quizzes",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizHistoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores the questions and answers of a taken quiz. The score is computed by the server.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Save a taken quiz",
                "parameters": [
                    {"description": "Quiz result", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SaveQuizResultRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SaveQuizResultResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quiz_details/{id}": {
            "get": {
                "description": "Returns quiz metadata and every question with the user's answer",
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Get a stored quiz",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizDetailsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "field": {"type": "string"},
                "message": {"type": "string"},
                "value": {}
            }
        },
        "dto.GenerateQuizRequest": {
            "type": "object",
            "properties": {
                "num_questions": {"type": "integer"},
                "text": {"type": "string"}
            }
        },
        "dto.GenerateQuizResponse": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/dto.QuizQuestionResponse"}}
            }
        },
        "dto.PreprocessTextRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "dto.PreprocessTextResponse": {
            "type": "object",
            "properties": {
                "cleaned_text": {"type": "string"}
            }
        },
        "dto.ProcessImageResponse": {
            "type": "object",
            "properties": {
                "cached": {"type": "boolean"},
                "engine": {"type": "string"},
                "extracted_text": {"type": "string"},
                "skew_angle": {"type": "number"}
            }
        },
        "dto.QuizAnswerRequest": {
            "type": "object",
            "properties": {
                "correct_answer": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "question": {"type": "string"},
                "user_answer": {"type": "string"}
            }
        },
        "dto.QuizDetailsResponse": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/dto.QuizQuestionResultResponse"}},
                "quiz_metadata": {"$ref": "#/definitions/dto.QuizSessionResponse"}
            }
        },
        "dto.QuizHistoryResponse": {
            "type": "object",
            "properties": {
                "quiz_results": {"type": "array", "items": {"$ref": "#/definitions/dto.QuizSessionResponse"}}
            }
        },
        "dto.QuizQuestionResponse": {
            "type": "object",
            "properties": {
                "correct_answer": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "question": {"type": "string"}
            }
        },
        "dto.QuizQuestionResultResponse": {
            "type": "object",
            "properties": {
                "correct_answer": {"type": "string"},
                "is_correct": {"type": "boolean"},
                "options": {"type": "array", "items": {"type": "string"}},
                "question": {"type": "string"},
                "user_answer": {"type": "string"}
            }
        },
        "dto.QuizSessionResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "extracted_text": {"type": "string"},
                "id": {"type": "string"},
                "score": {"type": "integer"},
                "score_percent": {"type": "number"},
                "total_questions": {"type": "integer"}
            }
        },
        "dto.SaveQuizResultRequest": {
            "type": "object",
            "properties": {
                "extracted_text": {"type": "string"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/dto.QuizAnswerRequest"}},
                "user_id": {"type": "string"}
            }
        },
        "dto.SaveQuizResultResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "message": {"type": "string"},
                "score": {"type": "integer"},
                "total_questions": {"type": "integer"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "TextQuiz API",
	Description:      "Turns photographed pages into fill-in-the-blank quizzes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
