package main

// @title User Service API
// @version 1.0
// @description CRUD microservice for the User resource with observability stack (Prometheus, Jaeger)

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @tag.name Users
// @tag.description User management endpoints

// @tag.name Health
// @tag.description Health check endpoints
