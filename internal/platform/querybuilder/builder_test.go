package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "display_name").
		From("players").
		Where(Eq("group_id", "g1"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, display_name FROM players WHERE group_id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "g1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_LteAndIn(t *testing.T) {
	query, args, err := Select("id").
		From("matches").
		Where(
			Eq("group_id", "g1"),
			Lte("played_at", "2026-01-01"),
			In("match_type", []any{"solo", "duo"}),
		).
		OrderBy("played_at ASC", "seq ASC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM matches WHERE group_id = $1 AND played_at <= $2 AND match_type IN ($3, $4) ORDER BY played_at ASC, seq ASC"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("match_players").
		Columns("match_id", "player_id", "side").
		Values("m1", "p1", "home").
		Values("m1", "p2", "away").
		Suffix("RETURNING match_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO match_players (match_id, player_id, side) VALUES ($1, $2, $3), ($4, $5, $6) RETURNING match_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		Set("display_name", "new").
		Where(Eq("id", "p1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET display_name = $1 WHERE id = $2 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "new" || args[1] != "p1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
