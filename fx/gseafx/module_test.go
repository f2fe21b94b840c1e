package gseafx

import (
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/discochess/gsea"
)

func TestModule(t *testing.T) {
	var engine *gsea.Engine
	app := fxtest.New(t,
		fx.Supply(zap.NewNop()),
		Module,
		fx.Populate(&engine),
	)
	app.RequireStart()
	defer app.RequireStop()

	if engine == nil {
		t.Fatal("engine was not provided")
	}
}

func TestModule_WithConfig(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(zap.NewNop(), Config{Workers: 2, ChunkSize: 8, RankingCacheSize: 16}),
		Module,
		fx.Invoke(func(*gsea.Engine) {}),
	)
	if err := app.Err(); err != nil {
		t.Fatalf("app.Err() = %v", err)
	}
}

func TestConfig_Options(t *testing.T) {
	if n := len(Config{}.Options()); n != 0 {
		t.Errorf("zero Config has %d options, want 0", n)
	}
	if n := len(Config{Workers: 1, ChunkSize: 2, RankingCacheSize: 3}.Options()); n != 3 {
		t.Errorf("full Config has %d options, want 3", n)
	}
}
