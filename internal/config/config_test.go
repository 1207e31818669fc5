package config

import (
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("s3:\n  bucket: data-dynamo-datasets\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if len(cfg.Server.Origins) != 2 {
		t.Errorf("Server.Origins = %v, want two localhost defaults", cfg.Server.Origins)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.Database.Host != "127.0.0.1" || cfg.Database.Port != 3306 {
		t.Errorf("Database host:port = %s:%d, want 127.0.0.1:3306", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.Name != "datadynamo" {
		t.Errorf("Database.Name = %q, want datadynamo", cfg.Database.Name)
	}
	if cfg.S3.Region != "us-east-2" {
		t.Errorf("S3.Region = %q, want us-east-2", cfg.S3.Region)
	}
}

func TestParse_SQLiteDefaultsPath(t *testing.T) {
	cfg, err := Parse([]byte("database:\n  driver: sqlite\ns3:\n  bucket: b\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Path != "datadynamo.db" {
		t.Errorf("Database.Path = %q, want datadynamo.db", cfg.Database.Path)
	}
}

func TestParse_RejectsUnknownDriver(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: postgres\ns3:\n  bucket: b\n"))
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), "database.driver") {
		t.Errorf("error = %q", err)
	}
}

func TestParse_RequiresBucket(t *testing.T) {
	_, err := Parse([]byte("server:\n  port: 9000\n"))
	if err == nil {
		t.Fatal("expected error for missing bucket")
	}
	if !strings.Contains(err.Error(), "s3.bucket is required") {
		t.Errorf("error = %q", err)
	}
}

func TestParse_ExplicitValuesKept(t *testing.T) {
	data := []byte(`
server:
  port: 9090
  origins:
    - https://studio.example.com
database:
  driver: mysql
  host: db.internal
  port: 3307
  name: dynamo_prod
s3:
  bucket: prod-datasets
  region: eu-west-1
  endpoint: http://minio:9000
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Server.Origins) != 1 || cfg.Server.Origins[0] != "https://studio.example.com" {
		t.Errorf("Server.Origins = %v", cfg.Server.Origins)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 3307 || cfg.Database.Name != "dynamo_prod" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.S3.Endpoint != "http://minio:9000" || cfg.S3.Region != "eu-west-1" {
		t.Errorf("S3 = %+v", cfg.S3)
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("server: [not a map"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/dynamo.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config: read") {
		t.Errorf("error = %q", err)
	}
}
