package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/datadynamo/dynamo/internal/account"
	"github.com/datadynamo/dynamo/internal/dataset"
	"github.com/datadynamo/dynamo/internal/graph"
	"github.com/datadynamo/dynamo/internal/project"
	"github.com/datadynamo/dynamo/internal/stage"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func handleRegister(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, err := account.Register(db, req.Username, req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "User registered successfully",
			"user_id": user.ID,
		})
	}
}

func handleLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, err := account.Login(db, req.Username, req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user_id": user.ID,
		})
	}
}

type createProjectRequest struct {
	ProjectName string `json:"project_name"`
	UserID      string `json:"user_id"`
}

func handleCreateProject(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		proj, err := project.Create(db, req.ProjectName, req.UserID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"project_id":   proj.ID,
			"project_name": proj.Name,
		})
	}
}

func handleListProjects(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := project.ListByUser(db, c.Query("user_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects})
	}
}

func handleUploadDataset(intake dataset.Intake) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			badRequest(c, fmt.Errorf("file is required: %w", err))
			return
		}
		file, err := header.Open()
		if err != nil {
			badRequest(c, err)
			return
		}
		defer file.Close()

		result, err := intake.Upload(c.Request.Context(), dataset.UploadOpts{
			ProjectID:   c.Param("project_id"),
			ProfileName: c.PostForm("profile_name"),
			Filename:    header.Filename,
			Size:        header.Size,
			Content:     file,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":            "File uploaded and profiled successfully",
			"dataset_id":         result.Profile.ID,
			"file_url":           result.FileURL,
			"detected_data_type": result.DetectedType,
		})
	}
}

func handleListDatasets(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := dataset.ListByProject(db, c.Param("project_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profiles": profiles})
	}
}

func handleGetDataset(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := dataset.Get(db, c.Param("profile_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

type createStageRequest struct {
	StageName  string `json:"stage_name"`
	UserPrompt string `json:"user_prompt"`
}

func handleCreateStage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createStageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		st, _, err := stage.Create(db, stage.CreateOpts{
			ProjectID: c.Param("project_id"),
			Name:      req.StageName,
			Prompt:    req.UserPrompt,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Pipeline stage created successfully",
			"stage_id":   st.ID,
			"stage_name": st.StageName,
		})
	}
}

func handleListStages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stages, err := stage.ListByProject(db, c.Param("project_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stages": stages})
	}
}

func handleGetNodes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dataNodes, pipelineNodes, err := graph.ListNodes(db, c.Param("project_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data_nodes":     dataNodes,
			"pipeline_nodes": pipelineNodes,
		})
	}
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func handleMoveNode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req positionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		nodeID := c.Param("node_id")
		if err := graph.MoveNode(db, nodeID, req.X, req.Y); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Node position updated",
			"node":    gin.H{"id": nodeID, "x": req.X, "y": req.Y},
		})
	}
}

type edgeRequest struct {
	SourceID  string `json:"source_id"`
	TargetID  string `json:"target_id"`
	ProjectID string `json:"project_id"`
}

func handleConnectNodes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req edgeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := graph.Connect(db, req.SourceID, req.TargetID, req.ProjectID); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Nodes connected successfully",
			"source":  req.SourceID,
			"target":  req.TargetID,
		})
	}
}

func handleDeleteEdge(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req edgeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := graph.Disconnect(db, req.SourceID, req.TargetID, req.ProjectID); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Edge deleted successfully"})
	}
}

func handleDeleteNode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := graph.DeleteNode(db, c.Param("node_id"), c.Query("project_id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Node deleted successfully"})
	}
}
