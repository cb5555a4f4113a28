package model_test

import (
	"testing"

	"github.com/yeisme/cloudvault/pkg/internal/model"
)

func TestFolderPathIDs(t *testing.T) {
	root := model.Folder{ID: "r", Path: ""}
	if ids := root.PathIDs(); ids != nil {
		t.Fatalf("root path ids = %v, want nil", ids)
	}

	deep := model.Folder{ID: "c", Path: "a/b/"}

	ids := deep.PathIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("path ids = %v", ids)
	}
}

func TestFolderSubtreePrefix(t *testing.T) {
	root := model.Folder{ID: "r", Path: ""}
	if p := root.SubtreePrefix(); p != "r/" {
		t.Fatalf("root subtree prefix = %q", p)
	}

	child := model.Folder{ID: "c", Path: "r/"}
	if p := child.SubtreePrefix(); p != "r/c/" {
		t.Fatalf("child subtree prefix = %q", p)
	}
}

func TestFolderHasAncestor(t *testing.T) {
	f := model.Folder{ID: "c", Path: "a/b/"}

	if !f.HasAncestor("a") || !f.HasAncestor("b") {
		t.Fatal("ancestors not detected")
	}

	// 自身与无关 ID 都不是祖先
	if f.HasAncestor("c") || f.HasAncestor("x") {
		t.Fatal("false ancestor detected")
	}
}
