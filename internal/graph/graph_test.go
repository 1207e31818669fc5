package graph

import (
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/datadynamo/dynamo/internal/apperr"
	"github.com/datadynamo/dynamo/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.Project{}, &models.DataProfile{}, &models.PipelineStage{},
		&models.DataNode{}, &models.PipelineNode{}, &models.IDSequence{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProject(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	if err := db.Create(&models.Project{ID: id, Name: "P " + id, UserID: "USR0001"}).Error; err != nil {
		t.Fatalf("seed project %s: %v", id, err)
	}
}

func seedProfile(t *testing.T, db *gorm.DB, id, projectID string) {
	t.Helper()
	p := models.DataProfile{
		ID: id, ProfileName: "pf", DatasetName: "d.csv",
		DatasetType: models.DatasetCSV, FilePath: "memory://x",
		RecordCount: "0", ProjectID: projectID,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile %s: %v", id, err)
	}
}

func seedStage(t *testing.T, db *gorm.DB, id, projectID string) {
	t.Helper()
	s := models.PipelineStage{
		ID: id, ProjectID: projectID, StageName: "Clean",
		StageType: "user_defined", Script: "#", ScriptLanguage: "python",
		DockerImage: "default-executor",
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed stage %s: %v", id, err)
	}
}

func getDataNode(t *testing.T, db *gorm.DB, id string) *models.DataNode {
	t.Helper()
	var n models.DataNode
	if err := db.Where("id = ?", id).First(&n).Error; err != nil {
		t.Fatalf("get data node %s: %v", id, err)
	}
	return &n
}

func getPipelineNode(t *testing.T, db *gorm.DB, id string) *models.PipelineNode {
	t.Helper()
	var n models.PipelineNode
	if err := db.Where("id = ?", id).First(&n).Error; err != nil {
		t.Fatalf("get pipeline node %s: %v", id, err)
	}
	return &n
}

func TestCreateDataNode(t *testing.T) {
	db := openTestDB(t)
	seedProject(t, db, "PRJ0001")
	seedProfile(t, db, "DTP0001", "PRJ0001")

	node, err := CreateDataNode(db, "PRJ0001", "DTP0001", 100, 100)
	if err != nil {
		t.Fatalf("CreateDataNode: %v", err)
	}
	if !regexp.MustCompile(`^DAT\d{4}$`).MatchString(node.ID) {
		t.Errorf("node ID %q does not match DAT pattern", node.ID)
	}
	if len(node.ConnectedTo) != 0 {
		t.Errorf("new node outgoing set = %v, want empty", node.ConnectedTo)
	}
	if node.X != 100 || node.Y != 100 {
		t.Errorf("position = (%v, %v), want (100, 100)", node.X, node.Y)
	}

	// Identifiers climb strictly.
	seedProfile(t, db, "DTP0002", "PRJ0001")
	second, err := CreateDataNode(db, "PRJ0001", "DTP0002", 0, 0)
	if err != nil {
		t.Fatalf("second CreateDataNode: %v", err)
	}
	if second.ID <= node.ID {
		t.Errorf("second ID %q not greater than first %q", second.ID, node.ID)
	}
}

func TestCreateDataNode_MissingProject(t *testing.T) {
	db := openTestDB(t)

	_, err := CreateDataNode(db, "PRJ0404", "DTP0001", 0, 0)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateDataNode_MissingProfile(t *testing.T) {
	db := openTestDB(t)
	seedProject(t, db, "PRJ0001")

	_, err := CreateDataNode(db, "PRJ0001", "DTP0404", 0, 0)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCreatePipelineNode(t *testing.T) {
	db := openTestDB(t)
	seedProject(t, db, "PRJ0001")
	seedStage(t, db, "PS0001", "PRJ0001")

	node, err := CreatePipelineNode(db, "PRJ0001", "PS0001", 200, 200)
	if err != nil {
		t.Fatalf("CreatePipelineNode: %v", err)
	}
	if !regexp.MustCompile(`^PIP\d{4}$`).MatchString(node.ID) {
		t.Errorf("node ID %q does not match PIP pattern", node.ID)
	}
	if len(node.InputNodes) != 0 || len(node.OutputNodes) != 0 {
		t.Errorf("new node edges = in %v out %v, want empty", node.InputNodes, node.OutputNodes)
	}
}

func TestCreatePipelineNode_MissingStage(t *testing.T) {
	db := openTestDB(t)
	seedProject(t, db, "PRJ0001")

	_, err := CreatePipelineNode(db, "PRJ0001", "PS0404", 0, 0)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// buildGraph seeds one project with a data node and two pipeline nodes.
func buildGraph(t *testing.T, db *gorm.DB) (dat, pipA, pipB string) {
	t.Helper()
	seedProject(t, db, "PRJ0001")
	seedProfile(t, db, "DTP0001", "PRJ0001")
	seedStage(t, db, "PS0001", "PRJ0001")
	seedStage(t, db, "PS0002", "PRJ0001")

	dn, err := CreateDataNode(db, "PRJ0001", "DTP0001", 100, 100)
	if err != nil {
		t.Fatalf("CreateDataNode: %v", err)
	}
	pa, err := CreatePipelineNode(db, "PRJ0001", "PS0001", 200, 200)
	if err != nil {
		t.Fatalf("CreatePipelineNode: %v", err)
	}
	pb, err := CreatePipelineNode(db, "PRJ0001", "PS0002", 300, 300)
	if err != nil {
		t.Fatalf("CreatePipelineNode: %v", err)
	}
	return dn.ID, pa.ID, pb.ID
}

func TestConnect_DataToPipeline(t *testing.T) {
	db := openTestDB(t)
	dat, pip, _ := buildGraph(t, db)

	if err := Connect(db, dat, pip, "PRJ0001"); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	src := getDataNode(t, db, dat)
	if len(src.ConnectedTo) != 1 || src.ConnectedTo[0] != pip {
		t.Errorf("source outgoing = %v, want [%s]", src.ConnectedTo, pip)
	}
	target := getPipelineNode(t, db, pip)
	if len(target.InputNodes) != 1 || target.InputNodes[0] != dat {
		t.Errorf("target inputs = %v, want [%s]", target.InputNodes, dat)
	}
}

func TestConnect_Idempotent(t *testing.T) {
	db := openTestDB(t)
	dat, pip, _ := buildGraph(t, db)

	if err := Connect(db, dat, pip, "PRJ0001"); err != nil {
		t.Fatalf("first Connect: %v", err)
	}
	if err := Connect(db, dat, pip, "PRJ0001"); err != nil {
		t.Fatalf("second Connect: %v", err)
	}

	src := getDataNode(t, db, dat)
	target := getPipelineNode(t, db, pip)
	if len(src.ConnectedTo) != 1 || len(target.InputNodes) != 1 {
		t.Errorf("duplicate edge recorded: outgoing %v inputs %v", src.ConnectedTo, target.InputNodes)
	}
}

func TestConnect_PipelineToPipeline(t *testing.T) {
	db := openTestDB(t)
	_, pipA, pipB := buildGraph(t, db)

	if err := Connect(db, pipA, pipB, "PRJ0001"); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	src := getPipelineNode(t, db, pipA)
	if !src.OutputNodes.Contains(pipB) {
		t.Errorf("source outputs = %v, want %s present", src.OutputNodes, pipB)
	}
	if len(src.InputNodes) != 0 {
		t.Errorf("source inputs = %v, want empty", src.InputNodes)
	}
	target := getPipelineNode(t, db, pipB)
	if !target.InputNodes.Contains(pipA) {
		t.Errorf("target inputs = %v, want %s present", target.InputNodes, pipA)
	}
}

func TestConnect_TargetMustBePipelineNode(t *testing.T) {
	db := openTestDB(t)
	dat, pipA, _ := buildGraph(t, db)

	// A data node is never a valid target; it resolves to NotFound in the
	// pipeline table and nothing changes.
	err := Connect(db, pipA, dat, "PRJ0001")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	src := getPipelineNode(t, db, pipA)
	if len(src.OutputNodes) != 0 {
		t.Errorf("failed connect mutated source: %v", src.OutputNodes)
	}
}

func TestConnect_InvalidSourcePrefix(t *testing.T) {
	db := openTestDB(t)
	_, pip, _ := buildGraph(t, db)

	err := Connect(db, "XYZ0001", pip, "PRJ0001")
	if !errors.Is(err, apperr.ErrInvalidID) {
		t.Fatalf("error = %v, want ErrInvalidID", err)
	}
	target := getPipelineNode(t, db, pip)
	if len(target.InputNodes) != 0 {
		t.Errorf("failed connect mutated target: %v", target.InputNodes)
	}
}

func TestConnect_WrongProjectScope(t *testing.T) {
	db := openTestDB(t)
	dat, pip, _ := buildGraph(t, db)
	seedProject(t, db, "PRJ0002")

	if err := Connect(db, dat, pip, "PRJ0002"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDisconnect_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	dat, pip, _ := buildGraph(t, db)

	if err := Connect(db, dat, pip, "PRJ0001"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := Disconnect(db, dat, pip, "PRJ0001"); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	src := getDataNode(t, db, dat)
	target := getPipelineNode(t, db, pip)
	if len(src.ConnectedTo) != 0 || len(target.InputNodes) != 0 {
		t.Errorf("edge survived round trip: outgoing %v inputs %v", src.ConnectedTo, target.InputNodes)
	}
}

func TestDisconnect_MissingEdgeIsNoop(t *testing.T) {
	db := openTestDB(t)
	dat, pip, _ := buildGraph(t, db)

	if err := Disconnect(db, dat, pip, "PRJ0001"); err != nil {
		t.Fatalf("Disconnect of absent edge: %v", err)
	}
}

func TestDisconnect_MissingNodeIsError(t *testing.T) {
	db := openTestDB(t)
	_, pip, _ := buildGraph(t, db)

	if err := Disconnect(db, "DAT9999", pip, "PRJ0001"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing source error = %v, want ErrNotFound", err)
	}
}

func TestMoveNode(t *testing.T) {
	db := openTestDB(t)
	dat, pip, _ := buildGraph(t, db)

	if err := MoveNode(db, dat, 42.5, -7); err != nil {
		t.Fatalf("MoveNode(data): %v", err)
	}
	n := getDataNode(t, db, dat)
	if n.X != 42.5 || n.Y != -7 {
		t.Errorf("data node position = (%v, %v), want (42.5, -7)", n.X, n.Y)
	}

	if err := MoveNode(db, pip, 1, 2); err != nil {
		t.Fatalf("MoveNode(pipeline): %v", err)
	}
	p := getPipelineNode(t, db, pip)
	if p.X != 1 || p.Y != 2 {
		t.Errorf("pipeline node position = (%v, %v), want (1, 2)", p.X, p.Y)
	}
}

func TestMoveNode_Errors(t *testing.T) {
	db := openTestDB(t)
	buildGraph(t, db)

	if err := MoveNode(db, "DAT9999", 0, 0); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing node error = %v, want ErrNotFound", err)
	}
	if err := MoveNode(db, "XYZ0001", 0, 0); !errors.Is(err, apperr.ErrInvalidID) {
		t.Errorf("bad prefix error = %v, want ErrInvalidID", err)
	}
}

func TestListNodes(t *testing.T) {
	db := openTestDB(t)
	buildGraph(t, db)

	dataNodes, pipelineNodes, err := ListNodes(db, "PRJ0001")
	if err != nil {
		t.Fatalf("ListNodes: %v", err)
	}
	if len(dataNodes) != 1 || len(pipelineNodes) != 2 {
		t.Errorf("ListNodes = %d data, %d pipeline; want 1, 2", len(dataNodes), len(pipelineNodes))
	}

	dataNodes, pipelineNodes, err = ListNodes(db, "PRJ0404")
	if err != nil {
		t.Fatalf("ListNodes(empty project): %v", err)
	}
	if len(dataNodes) != 0 || len(pipelineNodes) != 0 {
		t.Errorf("empty project returned nodes: %v %v", dataNodes, pipelineNodes)
	}
}

func TestDeleteNode_DataNodeStripsPeerInputs(t *testing.T) {
	db := openTestDB(t)
	dat, pip, _ := buildGraph(t, db)

	if err := Connect(db, dat, pip, "PRJ0001"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := DeleteNode(db, dat, "PRJ0001"); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}

	dataNodes, _, err := ListNodes(db, "PRJ0001")
	if err != nil {
		t.Fatalf("ListNodes: %v", err)
	}
	if len(dataNodes) != 0 {
		t.Errorf("deleted node still listed: %v", dataNodes)
	}

	// The target node survives but no longer references the deleted node.
	target := getPipelineNode(t, db, pip)
	if target.InputNodes.Contains(dat) {
		t.Errorf("dangling input reference to %s: %v", dat, target.InputNodes)
	}

	// The underlying profile is untouched.
	var count int64
	if err := db.Model(&models.DataProfile{}).Where("id = ?", "DTP0001").Count(&count).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if count != 1 {
		t.Error("profile deleted alongside node")
	}
}

func TestDeleteNode_PipelineNodeStripsAllPeerSets(t *testing.T) {
	db := openTestDB(t)
	dat, pipA, pipB := buildGraph(t, db)

	// dat → pipA, pipB → pipA: deleting pipA must clean dat's outgoing set
	// and pipB's output set.
	if err := Connect(db, dat, pipA, "PRJ0001"); err != nil {
		t.Fatalf("Connect dat→pipA: %v", err)
	}
	if err := Connect(db, pipB, pipA, "PRJ0001"); err != nil {
		t.Fatalf("Connect pipB→pipA: %v", err)
	}

	if err := DeleteNode(db, pipA, "PRJ0001"); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}

	src := getDataNode(t, db, dat)
	if src.ConnectedTo.Contains(pipA) {
		t.Errorf("dangling outgoing reference: %v", src.ConnectedTo)
	}
	peer := getPipelineNode(t, db, pipB)
	if peer.OutputNodes.Contains(pipA) {
		t.Errorf("dangling output reference: %v", peer.OutputNodes)
	}
}

func TestDeleteNode_Errors(t *testing.T) {
	db := openTestDB(t)
	buildGraph(t, db)

	if err := DeleteNode(db, "DAT9999", "PRJ0001"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing node error = %v, want ErrNotFound", err)
	}
	if err := DeleteNode(db, "XYZ0001", "PRJ0001"); !errors.Is(err, apperr.ErrInvalidID) {
		t.Errorf("bad prefix error = %v, want ErrInvalidID", err)
	}
}

func TestConnect_ConcurrentSourcesNoLostUpdate(t *testing.T) {
	db := openTestDB(t)
	seedProject(t, db, "PRJ0001")
	seedStage(t, db, "PS0001", "PRJ0001")

	pip, err := CreatePipelineNode(db, "PRJ0001", "PS0001", 200, 200)
	if err != nil {
		t.Fatalf("CreatePipelineNode: %v", err)
	}

	const sources = 6
	ids := make([]string, sources)
	for i := 0; i < sources; i++ {
		profID := models.DataProfile{
			ID: "DTP100" + string(rune('0'+i)), ProfileName: "pf", DatasetName: "d.csv",
			DatasetType: models.DatasetCSV, FilePath: "memory://x",
			RecordCount: "0", ProjectID: "PRJ0001",
		}
		if err := db.Create(&profID).Error; err != nil {
			t.Fatalf("seed profile %d: %v", i, err)
		}
		dn, err := CreateDataNode(db, "PRJ0001", profID.ID, 0, 0)
		if err != nil {
			t.Fatalf("CreateDataNode %d: %v", i, err)
		}
		ids[i] = dn.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := Connect(db, id, pip.ID, "PRJ0001"); err != nil {
				t.Errorf("Connect(%s): %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	target := getPipelineNode(t, db, pip.ID)
	if len(target.InputNodes) != sources {
		t.Fatalf("target inputs = %v (%d), want all %d sources", target.InputNodes, len(target.InputNodes), sources)
	}
	for _, id := range ids {
		if !target.InputNodes.Contains(id) {
			t.Errorf("input set missing %s", id)
		}
	}
}
