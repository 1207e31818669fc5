// Package graph implements the node-graph model: dataset and pipeline
// vertices with typed directed edges, and the mutations that keep both sides
// of every edge in step.
//
// Every mutation runs as one transaction. Node rows are read FOR UPDATE so
// two concurrent edits of the same edge set serialize instead of losing an
// update.
package graph

import (
	"errors"
	"fmt"

	"github.com/datadynamo/dynamo/internal/apperr"
	"github.com/datadynamo/dynamo/internal/ident"
	"github.com/datadynamo/dynamo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateDataNode creates the graph vertex for an uploaded dataset at (x, y).
// The project and the referenced profile must exist. The new node starts with
// no outgoing edges.
func CreateDataNode(db *gorm.DB, projectID, profileID string, x, y float64) (*models.DataNode, error) {
	var node models.DataNode
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, projectID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.DataProfile{}).
			Where("id = ? AND project_id = ?", profileID, projectID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("graph: check profile %s: %w", profileID, err)
		}
		if count == 0 {
			return fmt.Errorf("graph: data profile %s: %w", profileID, apperr.ErrNotFound)
		}

		id, err := ident.Next(tx, ident.PrefixDataNode)
		if err != nil {
			return err
		}
		node = models.DataNode{
			ID:            id,
			X:             x,
			Y:             y,
			ProjectID:     projectID,
			DataProfileID: profileID,
			ConnectedTo:   models.IDSet{},
		}
		if err := tx.Create(&node).Error; err != nil {
			return fmt.Errorf("graph: create data node: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// CreatePipelineNode creates the graph vertex for a pipeline stage at (x, y).
// The project and the referenced stage must exist.
func CreatePipelineNode(db *gorm.DB, projectID, stageID string, x, y float64) (*models.PipelineNode, error) {
	var node models.PipelineNode
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, projectID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.PipelineStage{}).
			Where("id = ? AND project_id = ?", stageID, projectID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("graph: check stage %s: %w", stageID, err)
		}
		if count == 0 {
			return fmt.Errorf("graph: pipeline stage %s: %w", stageID, apperr.ErrNotFound)
		}

		id, err := ident.Next(tx, ident.PrefixPipelineNode)
		if err != nil {
			return err
		}
		node = models.PipelineNode{
			ID:              id,
			X:               x,
			Y:               y,
			ProjectID:       projectID,
			PipelineStageID: stageID,
			InputNodes:      models.IDSet{},
			OutputNodes:     models.IDSet{},
		}
		if err := tx.Create(&node).Error; err != nil {
			return fmt.Errorf("graph: create pipeline node: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// ListNodes returns all nodes of both kinds in a project, in store order.
func ListNodes(db *gorm.DB, projectID string) ([]models.DataNode, []models.PipelineNode, error) {
	var dataNodes []models.DataNode
	if err := db.Where("project_id = ?", projectID).Find(&dataNodes).Error; err != nil {
		return nil, nil, fmt.Errorf("graph: list data nodes: %w", err)
	}
	var pipelineNodes []models.PipelineNode
	if err := db.Where("project_id = ?", projectID).Find(&pipelineNodes).Error; err != nil {
		return nil, nil, fmt.Errorf("graph: list pipeline nodes: %w", err)
	}
	return dataNodes, pipelineNodes, nil
}

// MoveNode overwrites a node's position. Coordinates are not bounds-checked.
func MoveNode(db *gorm.DB, nodeID string, x, y float64) error {
	ref, err := ParseRef(nodeID)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var model interface{}
		switch ref.Kind {
		case KindData:
			model = &models.DataNode{}
		case KindPipeline:
			model = &models.PipelineNode{}
		}
		result := tx.Model(model).Where("id = ?", nodeID).
			Updates(map[string]interface{}{"x": x, "y": y})
		if result.Error != nil {
			return fmt.Errorf("graph: move node %s: %w", nodeID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("graph: %s node %s: %w", ref.Kind, nodeID, apperr.ErrNotFound)
		}
		return nil
	})
}

// Connect adds a directed edge from source to target. The target must be a
// PipelineNode in the same project. The edge is recorded on both sides in one
// transaction, on the source's outgoing set and the target's input set, and
// re-connecting an existing edge is a no-op.
func Connect(db *gorm.DB, sourceID, targetID, projectID string) error {
	ref, err := ParseRef(sourceID)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		switch ref.Kind {
		case KindData:
			src, err := lockDataNode(tx, sourceID, projectID)
			if err != nil {
				return err
			}
			target, err := lockPipelineNode(tx, targetID, projectID)
			if err != nil {
				return err
			}
			if src.ConnectedTo.Add(targetID) {
				if err := saveDataEdges(tx, src); err != nil {
					return err
				}
			}
			if target.InputNodes.Add(sourceID) {
				if err := savePipelineEdges(tx, target); err != nil {
					return err
				}
			}
		case KindPipeline:
			src, err := lockPipelineNode(tx, sourceID, projectID)
			if err != nil {
				return err
			}
			target := src
			if targetID != sourceID {
				if target, err = lockPipelineNode(tx, targetID, projectID); err != nil {
					return err
				}
			}
			changed := src.OutputNodes.Add(targetID)
			changed = target.InputNodes.Add(sourceID) || changed
			if changed {
				if err := savePipelineEdges(tx, src); err != nil {
					return err
				}
				if target != src {
					if err := savePipelineEdges(tx, target); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// Disconnect removes the directed edge from source to target on both sides.
// Removing an edge that does not exist is a no-op per side; only a missing
// source or target node is an error.
func Disconnect(db *gorm.DB, sourceID, targetID, projectID string) error {
	ref, err := ParseRef(sourceID)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		switch ref.Kind {
		case KindData:
			src, err := lockDataNode(tx, sourceID, projectID)
			if err != nil {
				return err
			}
			target, err := lockPipelineNode(tx, targetID, projectID)
			if err != nil {
				return err
			}
			if src.ConnectedTo.Remove(targetID) {
				if err := saveDataEdges(tx, src); err != nil {
					return err
				}
			}
			if target.InputNodes.Remove(sourceID) {
				if err := savePipelineEdges(tx, target); err != nil {
					return err
				}
			}
		case KindPipeline:
			src, err := lockPipelineNode(tx, sourceID, projectID)
			if err != nil {
				return err
			}
			target := src
			if targetID != sourceID {
				if target, err = lockPipelineNode(tx, targetID, projectID); err != nil {
					return err
				}
			}
			changed := src.OutputNodes.Remove(targetID)
			changed = target.InputNodes.Remove(sourceID) || changed
			if changed {
				if err := savePipelineEdges(tx, src); err != nil {
					return err
				}
				if target != src {
					if err := savePipelineEdges(tx, target); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// DeleteNode removes a node and strips its identifier from every peer node's
// edge sets in the project, so no dangling references survive the delete.
// The underlying profile or stage record is left alone.
func DeleteNode(db *gorm.DB, nodeID, projectID string) error {
	ref, err := ParseRef(nodeID)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		switch ref.Kind {
		case KindData:
			if _, err := lockDataNode(tx, nodeID, projectID); err != nil {
				return err
			}
			if err := tx.Where("id = ?", nodeID).Delete(&models.DataNode{}).Error; err != nil {
				return fmt.Errorf("graph: delete data node %s: %w", nodeID, err)
			}
		case KindPipeline:
			if _, err := lockPipelineNode(tx, nodeID, projectID); err != nil {
				return err
			}
			if err := tx.Where("id = ?", nodeID).Delete(&models.PipelineNode{}).Error; err != nil {
				return fmt.Errorf("graph: delete pipeline node %s: %w", nodeID, err)
			}
		}
		return stripEdgeRefs(tx, projectID, nodeID, ref.Kind)
	})
}

// stripEdgeRefs removes a deleted node's identifier from all peer edge sets
// in the project. A DataNode id can only appear in input sets; a PipelineNode
// id can appear in all three.
func stripEdgeRefs(tx *gorm.DB, projectID, deletedID string, kind Kind) error {
	var pipes []models.PipelineNode
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectID).Find(&pipes).Error; err != nil {
		return fmt.Errorf("graph: sweep pipeline nodes: %w", err)
	}
	for i := range pipes {
		p := &pipes[i]
		changed := p.InputNodes.Remove(deletedID)
		if kind == KindPipeline {
			changed = p.OutputNodes.Remove(deletedID) || changed
		}
		if changed {
			if err := savePipelineEdges(tx, p); err != nil {
				return err
			}
		}
	}

	if kind != KindPipeline {
		return nil
	}
	var datas []models.DataNode
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectID).Find(&datas).Error; err != nil {
		return fmt.Errorf("graph: sweep data nodes: %w", err)
	}
	for i := range datas {
		d := &datas[i]
		if d.ConnectedTo.Remove(deletedID) {
			if err := saveDataEdges(tx, d); err != nil {
				return err
			}
		}
	}
	return nil
}

// requireProject fails with ErrNotFound unless the project exists.
func requireProject(tx *gorm.DB, projectID string) error {
	var count int64
	if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return fmt.Errorf("graph: check project %s: %w", projectID, err)
	}
	if count == 0 {
		return fmt.Errorf("graph: project %s: %w", projectID, apperr.ErrNotFound)
	}
	return nil
}

// lockDataNode reads a data node FOR UPDATE, scoped to the project.
func lockDataNode(tx *gorm.DB, id, projectID string) (*models.DataNode, error) {
	var node models.DataNode
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND project_id = ?", id, projectID).First(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("graph: data node %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("graph: load data node %s: %w", id, err)
	}
	return &node, nil
}

// lockPipelineNode reads a pipeline node FOR UPDATE, scoped to the project.
func lockPipelineNode(tx *gorm.DB, id, projectID string) (*models.PipelineNode, error) {
	var node models.PipelineNode
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND project_id = ?", id, projectID).First(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("graph: pipeline node %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("graph: load pipeline node %s: %w", id, err)
	}
	return &node, nil
}

func saveDataEdges(tx *gorm.DB, node *models.DataNode) error {
	if err := tx.Model(&models.DataNode{}).Where("id = ?", node.ID).
		Update("connected_nodes", node.ConnectedTo).Error; err != nil {
		return fmt.Errorf("graph: save edges of %s: %w", node.ID, err)
	}
	return nil
}

func savePipelineEdges(tx *gorm.DB, node *models.PipelineNode) error {
	if err := tx.Model(&models.PipelineNode{}).Where("id = ?", node.ID).
		Updates(map[string]interface{}{
			"input_nodes":  node.InputNodes,
			"output_nodes": node.OutputNodes,
		}).Error; err != nil {
		return fmt.Errorf("graph: save edges of %s: %w", node.ID, err)
	}
	return nil
}
