package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionByDialect(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"name", " ", "description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "(name LIKE ? OR description LIKE ?)" {
		t.Fatalf("unexpected sqlite condition: %s", condition)
	}

	condition, _ = buildLikeConditionByDialect("postgres", []string{"name"})
	if !strings.Contains(condition, "name ILIKE ?") {
		t.Fatalf("postgres should use ILIKE, got %s", condition)
	}

	condition, argCount = buildLikeConditionByDialect("sqlite", nil)
	if condition != "1 = 1" || argCount != 0 {
		t.Fatalf("empty columns should be a no-op condition, got %s/%d", condition, argCount)
	}
}

func TestJSONArrayContainsConditionByDialect(t *testing.T) {
	cond, arg := jsonArrayContainsConditionByDialect("sqlite", "menu_items", "attributes", " Veg ")
	if !strings.Contains(cond, "json_each(menu_items.attributes)") || arg != "veg" {
		t.Fatalf("unexpected sqlite condition: %s %v", cond, arg)
	}

	cond, arg = jsonArrayContainsConditionByDialect("postgres", "menu_items", "attributes", "spicy")
	if cond != "(menu_items.attributes::jsonb @> ?::jsonb)" || arg != `["spicy"]` {
		t.Fatalf("unexpected postgres condition: %s %v", cond, arg)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%paneer%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%paneer%" {
			t.Fatalf("args[%d] want %%paneer%% got %v", idx, arg)
		}
	}
}
