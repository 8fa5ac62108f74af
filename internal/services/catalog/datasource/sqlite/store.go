// Package sqlite provides the relational catalog data source backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/ajmonfue/poke-explorer/internal/platform/storage/sqlitemigrate"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource/sqlite/migrations"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	_ "modernc.org/sqlite"
)

const pokemonColumns = `p.id, p.name, p.description, p.image_url,
       p.evolution_stage, p.height, p.weight,
       p.hp, p.attack, p.defense, p.special_attack, p.special_defense, p.speed,
       g.id, g.handle, g.name`

// Store persists the catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite catalog store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// predicate is a WHERE fragment with its positional arguments.
type predicate struct {
	clauses []string
	args    []any
}

func (p *predicate) add(clause string, args ...any) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

func (p predicate) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

func (p predicate) clone() predicate {
	return predicate{
		clauses: append([]string(nil), p.clauses...),
		args:    append([]any(nil), p.args...),
	}
}

// FindAllPokemons returns one page of the filtered catalog. A name search
// keeps direct matches plus every creature sharing a line with them.
func (s *Store) FindAllPokemons(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ListedPokemon], error) {
	if err := s.ready(ctx); err != nil {
		return domain.Page[domain.ListedPokemon]{}, err
	}
	filter = domain.ClampListFilter(filter)

	var base predicate
	if filter.Type != "" {
		base.add(`p.id IN (
		   SELECT r.pokemon_id
		     FROM pokemon_type_relations r
		     JOIN pokemon_types t ON t.id = r.pokemon_type_id
		    WHERE t.handle = ?)`, filter.Type)
	}
	if filter.Generation != "" {
		base.add(`g.handle = ?`, filter.Generation)
	}

	where := base
	direct := map[int]bool{}
	query := domain.NormalizeName(filter.Name)
	if query != "" {
		ids, err := s.directMatches(ctx, base, query)
		if err != nil {
			return domain.Page[domain.ListedPokemon]{}, err
		}
		if len(ids) == 0 {
			return domain.PageOf([]domain.ListedPokemon{}, 0, filter), nil
		}
		for _, id := range ids {
			direct[id] = true
		}
		idArgs := intArgs(ids)
		where = base.clone()
		where.add(`(p.id IN (`+placeholders(len(ids))+`) OR p.id IN (
		   SELECT l.pokemon_id
		     FROM pokemon_evolution_lines l
		    WHERE l.line IN (
		      SELECT m.line FROM pokemon_evolution_lines m WHERE m.pokemon_id IN (`+placeholders(len(ids))+`))))`,
			append(idArgs, idArgs...)...)
	}

	var count int
	if err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM pokemons p JOIN generations g ON g.id = p.generation_id`+where.where(),
		where.args...,
	).Scan(&count); err != nil {
		return domain.Page[domain.ListedPokemon]{}, fmt.Errorf("count pokemons: %w", err)
	}

	args := append(where.args, filter.Limit, filter.Offset)
	pokemons, err := s.queryPokemons(
		ctx,
		`SELECT `+pokemonColumns+`
		   FROM pokemons p
		   JOIN generations g ON g.id = p.generation_id`+where.where()+`
		  ORDER BY p.id ASC
		  LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return domain.Page[domain.ListedPokemon]{}, fmt.Errorf("list pokemons: %w", err)
	}

	listed := make([]domain.ListedPokemon, 0, len(pokemons))
	for _, p := range pokemons {
		item := domain.ListedPokemon{Pokemon: p}
		if query != "" {
			item.SearchMatch = domain.SearchMatchEvolution
			if direct[p.ID] {
				item.SearchMatch = domain.SearchMatchContains
			}
		}
		listed = append(listed, item)
	}
	return domain.PageOf(listed, count, filter), nil
}

func (s *Store) directMatches(ctx context.Context, base predicate, query string) ([]int, error) {
	where := base.clone()
	where.add(`p.name_search LIKE ? ESCAPE '\'`, "%"+escapeLike(query)+"%")
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT p.id FROM pokemons p JOIN generations g ON g.id = p.generation_id`+where.where()+` ORDER BY p.id ASC`,
		where.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("search pokemons: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("search pokemons: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search pokemons: %w", err)
	}
	return ids, nil
}

// FindPokemonByID returns one creature or datasource.ErrNotFound.
func (s *Store) FindPokemonByID(ctx context.Context, id int) (domain.Pokemon, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Pokemon{}, err
	}
	pokemons, err := s.queryPokemons(
		ctx,
		`SELECT `+pokemonColumns+`
		   FROM pokemons p
		   JOIN generations g ON g.id = p.generation_id
		  WHERE p.id = ?`,
		id,
	)
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("get pokemon: %w", err)
	}
	if len(pokemons) == 0 {
		return domain.Pokemon{}, datasource.ErrNotFound
	}
	return pokemons[0], nil
}

// FindEvolutions returns the creatures sharing any of lines, by stage.
func (s *Store) FindEvolutions(ctx context.Context, lines []string) ([]domain.Pokemon, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []domain.Pokemon{}, nil
	}
	args := make([]any, 0, len(lines))
	for _, line := range lines {
		args = append(args, line)
	}
	pokemons, err := s.queryPokemons(
		ctx,
		`SELECT `+pokemonColumns+`
		   FROM pokemons p
		   JOIN generations g ON g.id = p.generation_id
		  WHERE p.id IN (
		    SELECT l.pokemon_id FROM pokemon_evolution_lines l WHERE l.line IN (`+placeholders(len(lines))+`))
		  ORDER BY p.evolution_stage ASC, p.id ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list evolutions: %w", err)
	}
	return pokemons, nil
}

// FindGenerations returns every generation ordered by id.
func (s *Store) FindGenerations(ctx context.Context) ([]domain.Generation, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, handle, name FROM generations ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	generations := make([]domain.Generation, 0)
	for rows.Next() {
		var g domain.Generation
		if err := rows.Scan(&g.ID, &g.Handle, &g.Name); err != nil {
			return nil, fmt.Errorf("list generations: %w", err)
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	return generations, nil
}

// FindPokemonTypes returns every type ordered by id.
func (s *Store) FindPokemonTypes(ctx context.Context) ([]domain.PokemonType, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, handle, name FROM pokemon_types ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pokemon types: %w", err)
	}
	defer rows.Close()

	types := make([]domain.PokemonType, 0)
	for rows.Next() {
		var t domain.PokemonType
		if err := rows.Scan(&t.ID, &t.Handle, &t.Name); err != nil {
			return nil, fmt.Errorf("list pokemon types: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pokemon types: %w", err)
	}
	return types, nil
}

// queryPokemons scans creature rows and attaches their lines and types.
func (s *Store) queryPokemons(ctx context.Context, query string, args ...any) ([]domain.Pokemon, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pokemons := make([]domain.Pokemon, 0)
	for rows.Next() {
		var p domain.Pokemon
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.ImageURL,
			&p.EvolutionStage,
			&p.Height,
			&p.Weight,
			&p.Stats.HP,
			&p.Stats.Attack,
			&p.Stats.Defense,
			&p.Stats.SpecialAttack,
			&p.Stats.SpecialDefense,
			&p.Stats.Speed,
			&p.Generation.ID,
			&p.Generation.Handle,
			&p.Generation.Name,
		); err != nil {
			return nil, err
		}
		p.EvolutionLines = []string{}
		p.Types = []domain.PokemonType{}
		pokemons = append(pokemons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(pokemons) == 0 {
		return pokemons, nil
	}
	if err := s.attachRelations(ctx, pokemons); err != nil {
		return nil, err
	}
	return pokemons, nil
}

func (s *Store) attachRelations(ctx context.Context, pokemons []domain.Pokemon) error {
	index := make(map[int]int, len(pokemons))
	ids := make([]int, 0, len(pokemons))
	for i, p := range pokemons {
		index[p.ID] = i
		ids = append(ids, p.ID)
	}
	idArgs := intArgs(ids)

	lineRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT pokemon_id, line FROM pokemon_evolution_lines
		  WHERE pokemon_id IN (`+placeholders(len(ids))+`)
		  ORDER BY pokemon_id ASC, position ASC`,
		idArgs...,
	)
	if err != nil {
		return fmt.Errorf("load evolution lines: %w", err)
	}
	for lineRows.Next() {
		var id int
		var line string
		if err := lineRows.Scan(&id, &line); err != nil {
			_ = lineRows.Close()
			return fmt.Errorf("load evolution lines: %w", err)
		}
		i := index[id]
		pokemons[i].EvolutionLines = append(pokemons[i].EvolutionLines, line)
	}
	if err := lineRows.Err(); err != nil {
		_ = lineRows.Close()
		return fmt.Errorf("load evolution lines: %w", err)
	}
	_ = lineRows.Close()

	typeRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT r.pokemon_id, t.id, t.handle, t.name
		   FROM pokemon_type_relations r
		   JOIN pokemon_types t ON t.id = r.pokemon_type_id
		  WHERE r.pokemon_id IN (`+placeholders(len(ids))+`)
		  ORDER BY r.pokemon_id ASC, r.slot ASC`,
		idArgs...,
	)
	if err != nil {
		return fmt.Errorf("load pokemon types: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var id int
		var t domain.PokemonType
		if err := typeRows.Scan(&id, &t.ID, &t.Handle, &t.Name); err != nil {
			return fmt.Errorf("load pokemon types: %w", err)
		}
		i := index[id]
		pokemons[i].Types = append(pokemons[i].Types, t)
	}
	if err := typeRows.Err(); err != nil {
		return fmt.Errorf("load pokemon types: %w", err)
	}
	return nil
}

// UpsertGeneration inserts or replaces one generation.
func (s *Store) UpsertGeneration(ctx context.Context, g domain.Generation) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if g.ID <= 0 {
		return fmt.Errorf("generation id must be greater than zero")
	}
	if strings.TrimSpace(g.Handle) == "" {
		return fmt.Errorf("generation handle is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO generations (id, handle, name) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET handle = excluded.handle, name = excluded.name`,
		g.ID, strings.TrimSpace(g.Handle), strings.TrimSpace(g.Name),
	)
	if err != nil {
		return fmt.Errorf("upsert generation: %w", err)
	}
	return nil
}

// UpsertPokemonType inserts or replaces one type.
func (s *Store) UpsertPokemonType(ctx context.Context, t domain.PokemonType) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if t.ID <= 0 {
		return fmt.Errorf("pokemon type id must be greater than zero")
	}
	if strings.TrimSpace(t.Handle) == "" {
		return fmt.Errorf("pokemon type handle is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO pokemon_types (id, handle, name) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET handle = excluded.handle, name = excluded.name`,
		t.ID, strings.TrimSpace(t.Handle), strings.TrimSpace(t.Name),
	)
	if err != nil {
		return fmt.Errorf("upsert pokemon type: %w", err)
	}
	return nil
}

// UpsertPokemon inserts or replaces one creature together with its lines
// and type relations.
func (s *Store) UpsertPokemon(ctx context.Context, p domain.Pokemon) (err error) {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if p.ID <= 0 {
		return fmt.Errorf("pokemon id must be greater than zero")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("pokemon name is required")
	}
	if p.Generation.ID <= 0 {
		return fmt.Errorf("pokemon generation is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(
		ctx,
		`INSERT INTO pokemons (
		   id, name, name_search, description, image_url, generation_id,
		   evolution_stage, height, weight,
		   hp, attack, defense, special_attack, special_defense, speed
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   name_search = excluded.name_search,
		   description = excluded.description,
		   image_url = excluded.image_url,
		   generation_id = excluded.generation_id,
		   evolution_stage = excluded.evolution_stage,
		   height = excluded.height,
		   weight = excluded.weight,
		   hp = excluded.hp,
		   attack = excluded.attack,
		   defense = excluded.defense,
		   special_attack = excluded.special_attack,
		   special_defense = excluded.special_defense,
		   speed = excluded.speed`,
		p.ID,
		name,
		domain.NormalizeName(name),
		strings.TrimSpace(p.Description),
		strings.TrimSpace(p.ImageURL),
		p.Generation.ID,
		p.EvolutionStage,
		p.Height,
		p.Weight,
		p.Stats.HP,
		p.Stats.Attack,
		p.Stats.Defense,
		p.Stats.SpecialAttack,
		p.Stats.SpecialDefense,
		p.Stats.Speed,
	); err != nil {
		return fmt.Errorf("upsert pokemon: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM pokemon_evolution_lines WHERE pokemon_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear evolution lines: %w", err)
	}
	for i, line := range p.EvolutionLines {
		if _, err = tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO pokemon_evolution_lines (pokemon_id, line, position) VALUES (?, ?, ?)`,
			p.ID, line, i,
		); err != nil {
			return fmt.Errorf("insert evolution line: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM pokemon_type_relations WHERE pokemon_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear type relations: %w", err)
	}
	for i, t := range p.Types {
		if _, err = tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO pokemon_type_relations (pokemon_id, pokemon_type_id, slot) VALUES (?, ?, ?)`,
			p.ID, t.ID, i+1,
		); err != nil {
			return fmt.Errorf("insert type relation: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func intArgs(values []int) []any {
	args := make([]any, 0, len(values))
	for _, v := range values {
		args = append(args, v)
	}
	return args
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

var _ datasource.DataSource = (*Store)(nil)
