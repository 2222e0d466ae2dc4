package spannerstore

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DatabasePath is a parsed projects/<p>/instances/<i>/databases/<d> name.
type DatabasePath struct {
	Project  string
	Instance string
	Database string
}

// ParseDatabasePath splits a database resource name.
func ParseDatabasePath(name string) (DatabasePath, error) {
	parts := strings.Split(name, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" ||
		parts[1] == "" || parts[3] == "" || parts[5] == "" {
		return DatabasePath{}, fmt.Errorf("invalid spanner database name %q", name)
	}
	return DatabasePath{Project: parts[1], Instance: parts[3], Database: parts[5]}, nil
}

func (p DatabasePath) projectName() string  { return "projects/" + p.Project }
func (p DatabasePath) instanceName() string { return p.projectName() + "/instances/" + p.Instance }
func (p DatabasePath) String() string       { return p.instanceName() + "/databases/" + p.Database }

var createTablePattern = regexp.MustCompile(`(?i)^\s*CREATE\s+TABLE\s+` + "`?" + `(\w+)`)

// EnsureSchema creates the database when it is missing and applies the
// CREATE TABLE statements whose tables do not exist yet. Against the
// emulator (SPANNER_EMULATOR_HOST set) the instance is created as well.
func EnsureSchema(ctx context.Context, name string, ddl []string) error {
	path, err := ParseDatabasePath(name)
	if err != nil {
		return err
	}
	log := zerolog.Ctx(ctx).With().Str("database", path.String()).Logger()

	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		if err := ensureInstance(ctx, path, log); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: path.String()})
	switch {
	case status.Code(err) == codes.NotFound:
		log.Info().Msg("creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          path.instanceName(),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", path.Database),
			ExtraStatements: ddl,
		})
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to check database: %w", err)
	}

	current, err := adminClient.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: path.String()})
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	missing := missingStatements(current.GetStatements(), ddl)
	if len(missing) == 0 {
		return nil
	}

	log.Info().Int("statements", len(missing)).Msg("applying schema")
	op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   path.String(),
		Statements: missing,
	})
	if err != nil {
		return fmt.Errorf("failed to start DDL update: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to apply DDL: %w", err)
	}
	return nil
}

// missingStatements returns the CREATE TABLE statements of want whose table
// is not created by any statement of have. Other statements are kept as is.
func missingStatements(have, want []string) []string {
	existing := make(map[string]bool, len(have))
	for _, stmt := range have {
		if m := createTablePattern.FindStringSubmatch(stmt); m != nil {
			existing[strings.ToLower(m[1])] = true
		}
	}

	var missing []string
	for _, stmt := range want {
		if m := createTablePattern.FindStringSubmatch(stmt); m != nil && existing[strings.ToLower(m[1])] {
			continue
		}
		missing = append(missing, stmt)
	}
	return missing
}

func ensureInstance(ctx context.Context, path DatabasePath, log zerolog.Logger) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: path.instanceName()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return err
	}

	log.Info().Str("instance", path.Instance).Msg("creating emulator instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     path.projectName(),
		InstanceId: path.Instance,
		Instance: &instancepb.Instance{
			Config:      path.projectName() + "/instanceConfigs/emulator-config",
			DisplayName: path.Instance,
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to wait for instance creation: %w", err)
	}
	return nil
}
