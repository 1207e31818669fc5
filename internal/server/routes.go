package server

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/datadynamo/dynamo/internal/dataset"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, intake dataset.Intake) {
	// Accounts.
	router.POST("/register", handleRegister(db))
	router.POST("/login", handleLogin(db))

	// Projects.
	router.POST("/projects", handleCreateProject(db))
	router.GET("/projects", handleListProjects(db))

	// Datasets and stages.
	router.POST("/projects/:project_id/datasets", handleUploadDataset(intake))
	router.GET("/projects/:project_id/datasets", handleListDatasets(db))
	router.GET("/datasets/:profile_id", handleGetDataset(db))
	router.POST("/projects/:project_id/stages", handleCreateStage(db))
	router.GET("/projects/:project_id/stages", handleListStages(db))

	// Graph.
	router.GET("/projects/:project_id/nodes", handleGetNodes(db))
	router.PUT("/nodes/:node_id/position", handleMoveNode(db))
	router.POST("/connect", handleConnectNodes(db))
	router.DELETE("/edges", handleDeleteEdge(db))
	router.DELETE("/nodes/:node_id", handleDeleteNode(db))
}
