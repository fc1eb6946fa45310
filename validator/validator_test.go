package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/ddlgen/schema"
	"github.com/ridoystarlord/ddlgen/validator"
)

func model(name string, fields []schema.Field, rels ...schema.Relation) *schema.Model {
	return &schema.Model{App: "app", Name: name, Fields: fields, Relations: rels}
}

func text(name string) schema.Field {
	return schema.Field{Name: name, Type: schema.TypeText}
}

func fk(name, to string) schema.Relation {
	return schema.Relation{Name: name, Kind: schema.ForeignKey, To: to}
}

func tables(g *validator.Graph) []string {
	var names []string
	for _, n := range g.Models {
		names = append(names, n.Table)
	}
	return names
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		models []*schema.Model
		kind   schema.ErrorKind
		msg    string
	}{
		{
			name:   "target without app",
			models: []*schema.Model{model("Event", nil, fk("tournament", "Tournament"))},
			kind:   schema.MalformedReference,
			msg:    `app.Event.tournament: Foreign key accepts model name in format "app.Model"`,
		},
		{
			name:   "target with too many parts",
			models: []*schema.Model{model("Event", nil, fk("tournament", "a.b.Tournament"))},
			kind:   schema.MalformedReference,
		},
		{
			name:   "unknown app",
			models: []*schema.Model{model("Event", nil, fk("tournament", "other.Tournament"))},
			kind:   schema.UnresolvedReference,
			msg:    `app.Event.tournament: No app with name "other" registered`,
		},
		{
			name:   "unknown model",
			models: []*schema.Model{model("Event", nil, fk("tournament", "app.Tournament"))},
			kind:   schema.UnresolvedReference,
			msg:    `app.Event.tournament: No model with name "Tournament" registered in app "app"`,
		},
		{
			name: "bad on delete",
			models: []*schema.Model{
				model("Tournament", nil),
				model("Event", nil, schema.Relation{Name: "tournament", Kind: schema.ForeignKey, To: "app.Tournament", OnDelete: "EXPLODE"}),
			},
			kind: schema.InvalidOnDelete,
			msg:  "app.Event.tournament: on_delete can only be CASCADE, RESTRICT, SET_NULL or NO_ACTION",
		},
		{
			name: "set null on required",
			models: []*schema.Model{
				model("Tournament", nil),
				model("Event", nil, schema.Relation{Name: "tournament", Kind: schema.ForeignKey, To: "app.Tournament", OnDelete: schema.SetNull}),
			},
			kind: schema.SetNullNotNullable,
			msg:  "app.Event.tournament: If on_delete is SET_NULL, then field must be nullable",
		},
		{
			name: "required cycle",
			models: []*schema.Model{
				model("A", nil, fk("b", "app.B")),
				model("B", nil, fk("a", "app.A")),
			},
			kind: schema.CyclicReference,
			msg:  "Can't create schema due to cyclic fk references",
		},
		{
			name:   "duplicate model",
			models: []*schema.Model{model("A", nil), model("A", nil)},
			kind:   schema.DuplicateModel,
		},
		{
			name: "two primary keys",
			models: []*schema.Model{model("A", []schema.Field{
				{Name: "a", Type: schema.TypeInt, PK: true},
				{Name: "b", Type: schema.TypeInt, PK: true},
			})},
			kind: schema.InvalidPrimaryKey,
		},
		{
			name:   "id without pk",
			models: []*schema.Model{model("A", []schema.Field{{Name: "id", Type: schema.TypeInt}})},
			kind:   schema.InvalidPrimaryKey,
		},
		{
			name:   "generated text",
			models: []*schema.Model{model("A", []schema.Field{{Name: "code", Type: schema.TypeText, PK: true, Generated: true}})},
			kind:   schema.InvalidPrimaryKey,
		},
		{
			name: "self primary key",
			models: []*schema.Model{
				model("A", nil, schema.Relation{Name: "parent", Kind: schema.OneToOne, To: "app.A", PK: true}),
			},
			kind: schema.InvalidPrimaryKey,
		},
		{
			name: "fk primary key",
			models: []*schema.Model{
				model("A", nil),
				model("B", nil, schema.Relation{Name: "a", Kind: schema.ForeignKey, To: "app.A", PK: true}),
			},
			kind: schema.InvalidPrimaryKey,
		},
		{
			name:   "unknown unique field",
			models: []*schema.Model{{App: "app", Name: "A", Fields: []schema.Field{text("name")}, UniqueTogether: [][]string{{"name", "missing"}}}},
			kind:   schema.UnknownField,
			msg:    `app.A.missing: no field "missing" on model`,
		},
		{
			name:   "unknown index field",
			models: []*schema.Model{{App: "app", Name: "A", Indexes: [][]string{{"nope"}}}},
			kind:   schema.UnknownField,
		},
		{
			name: "unknown to_field",
			models: []*schema.Model{
				model("A", nil),
				model("B", nil, schema.Relation{Name: "a", Kind: schema.ForeignKey, To: "app.A", ToField: "uuid"}),
			},
			kind: schema.UnknownField,
		},
		{
			name:   "unknown type",
			models: []*schema.Model{model("A", []schema.Field{{Name: "x", Type: "money"}})},
			kind:   schema.InvalidField,
		},
		{
			name:   "varchar without length",
			models: []*schema.Model{model("A", []schema.Field{{Name: "x", Type: schema.TypeVarchar}})},
			kind:   schema.InvalidField,
		},
		{
			name:   "decimal places above digits",
			models: []*schema.Model{model("A", []schema.Field{{Name: "x", Type: schema.TypeDecimal, MaxDigits: 2, DecimalPlaces: 3}})},
			kind:   schema.InvalidField,
		},
		{
			name:   "auto now on date",
			models: []*schema.Model{model("A", []schema.Field{{Name: "x", Type: schema.TypeDate, AutoNow: true}})},
			kind:   schema.InvalidField,
		},
		{
			name:   "duplicate column",
			models: []*schema.Model{model("A", []schema.Field{text("b_id")}, fk("b", "app.A"))},
			kind:   schema.InvalidField,
			msg:    `app.A.b: duplicate column "b_id"`,
		},
		{
			name: "m2m target without app",
			models: []*schema.Model{
				model("Team", nil),
				model("Event", nil, schema.Relation{Name: "teams", Kind: schema.ManyToMany, To: "Team"}),
			},
			kind: schema.MalformedReference,
			msg:  `app.Event.teams: Foreign key accepts model name in format "app.Model"`,
		},
		{
			name: "o2o bad on delete",
			models: []*schema.Model{
				model("User", nil),
				model("Profile", nil, schema.Relation{Name: "user", Kind: schema.OneToOne, To: "app.User", OnDelete: "EXPLODE"}),
			},
			kind: schema.InvalidOnDelete,
		},
		{
			name: "o2o set null on required",
			models: []*schema.Model{
				model("User", nil),
				model("Profile", nil, schema.Relation{Name: "user", Kind: schema.OneToOne, To: "app.User", OnDelete: schema.SetNull}),
			},
			kind: schema.SetNullNotNullable,
			msg:  "app.Profile.user: If on_delete is SET_NULL, then field must be nullable",
		},
		{
			name: "unknown relation kind",
			models: []*schema.Model{
				model("A", nil),
				model("B", nil, schema.Relation{Name: "a", Kind: "weird", To: "app.A"}),
			},
			kind: schema.InvalidField,
			msg:  `app.B.a: unknown relation kind "weird"`,
		},
		{
			name: "same table name",
			models: []*schema.Model{
				model("Team", nil),
				{App: "other", Name: "Squad", Table: "team"},
			},
			kind: schema.DuplicateTable,
			msg:  `other.Squad: table "team" is already used by app.Team`,
		},
		{
			name: "join table shadows model table",
			models: []*schema.Model{
				model("Team", nil),
				model("Event", nil, schema.Relation{Name: "teams", Kind: schema.ManyToMany, To: "app.Team"}),
				{App: "app", Name: "Roster", Table: "event_team"},
			},
			kind: schema.DuplicateTable,
			msg:  `app.Event.teams: join table "event_team" is already used by app.Roster`,
		},
		{
			name: "two joins to the same target",
			models: []*schema.Model{
				model("Team", nil),
				model("Event", nil,
					schema.Relation{Name: "home", Kind: schema.ManyToMany, To: "app.Team"},
					schema.Relation{Name: "away", Kind: schema.ManyToMany, To: "app.Team"},
				),
			},
			kind: schema.DuplicateTable,
			msg:  `app.Event.away: join table "event_team" is already used by app.Event.home`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validator.Resolve(tt.models)
			require.Error(t, err)
			assert.True(t, schema.IsKind(err, tt.kind), "got %v", err)
			if tt.msg != "" {
				assert.EqualError(t, err, tt.msg)
			}
		})
	}
}

func TestResolveOrder(t *testing.T) {
	t.Parallel()

	t.Run("declaration order when independent", func(t *testing.T) {
		g, err := validator.Resolve([]*schema.Model{model("B", nil), model("A", nil), model("C", nil)})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, tables(g))
	})

	t.Run("targets first", func(t *testing.T) {
		g, err := validator.Resolve([]*schema.Model{
			model("Event", nil, fk("tournament", "app.Tournament")),
			model("Team", nil),
			model("Tournament", nil),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"team", "tournament", "event"}, tables(g))
	})

	t.Run("nullable forward references wait when possible", func(t *testing.T) {
		manager := fk("manager", "app.Person")
		manager.Null = true
		g, err := validator.Resolve([]*schema.Model{
			model("Team", nil, manager),
			model("Person", nil),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"person", "team"}, tables(g))
	})

	t.Run("nullable cycle is broken", func(t *testing.T) {
		favorite := fk("favorite", "app.Book")
		favorite.Null = true
		g, err := validator.Resolve([]*schema.Model{
			model("Author", nil, favorite),
			model("Book", nil, fk("author", "app.Author")),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"author", "book"}, tables(g))
		assert.False(t, g.Models[0].Refs[0].Required)
		assert.True(t, g.Models[1].Refs[0].Required)
	})

	t.Run("self references do not constrain", func(t *testing.T) {
		g, err := validator.Resolve([]*schema.Model{model("Node", nil, fk("parent", "app.Node"))})
		require.NoError(t, err)
		require.Len(t, g.Models, 1)
		assert.True(t, g.Models[0].Refs[0].Self)
	})
}

func TestResolvePrimaryKeys(t *testing.T) {
	t.Parallel()

	g, err := validator.Resolve([]*schema.Model{
		model("Plain", []schema.Field{text("name")}),
		model("Team", []schema.Field{{Name: "name", Type: schema.TypeVarchar, MaxLength: 50, PK: true}}),
		model("TeamAddress", []schema.Field{text("city")}, schema.Relation{Name: "team", Kind: schema.OneToOne, To: "app.Team", PK: true}),
		model("Extra", nil, schema.Relation{Name: "address", Kind: schema.OneToOne, To: "app.TeamAddress", PK: true}),
	})
	require.NoError(t, err)

	plain := g.Models[0]
	assert.Equal(t, "id", plain.PK.Column)
	require.Len(t, plain.Fields, 2)
	assert.Equal(t, "id", plain.Fields[0].Name)
	assert.True(t, plain.Fields[0].Generated)
	assert.Equal(t, schema.TypeInt, plain.PK.Field.Type)

	team := g.Models[1]
	assert.Equal(t, "name", team.PK.Column)
	assert.Len(t, team.Fields, 1)

	addr := g.Models[2]
	assert.Equal(t, "team_id", addr.PK.Column)
	assert.Equal(t, schema.TypeVarchar, addr.PK.Field.Type)
	assert.NotNil(t, addr.PK.Relation)
	assert.Len(t, addr.Fields, 1)

	extra := g.Models[3]
	assert.Equal(t, "address_id", extra.PK.Column)
	assert.Equal(t, schema.TypeVarchar, extra.PK.Field.Type, "key type follows one-to-one chains")
	assert.Equal(t, "team_id", extra.Refs[0].TargetColumn)
}

func TestResolveTargets(t *testing.T) {
	t.Parallel()

	employee := fk("company", "app.Company")
	employee.ToField = "uuid"
	g, err := validator.Resolve([]*schema.Model{
		model("Company", []schema.Field{{Name: "uuid", Type: schema.TypeUUID, Unique: true}}),
		{
			App: "app", Name: "Employee",
			Fields:         []schema.Field{text("name")},
			Relations:      []schema.Relation{employee},
			UniqueTogether: [][]string{{"company", "name"}},
			Indexes:        [][]string{{"company_id"}},
		},
	})
	require.NoError(t, err)

	e := g.Models[1]
	require.Len(t, e.Refs, 1)
	assert.Equal(t, "uuid", e.Refs[0].TargetColumn)
	assert.Equal(t, schema.TypeUUID, e.Refs[0].TargetField.Type)
	assert.Equal(t, [][]string{{"company_id", "name"}}, e.UniqueTogether)
	assert.Equal(t, [][]string{{"company_id"}}, e.Indexes)
}

func TestResolveNaming(t *testing.T) {
	t.Parallel()

	g, err := validator.Resolve([]*schema.Model{model("VenueInformation", nil)}, validator.WithNaming(schema.NamingSnake))
	require.NoError(t, err)
	assert.Equal(t, "venue_information", g.Models[0].Table)
	assert.Equal(t, schema.NamingSnake, g.Naming)
}

func TestJoinTable(t *testing.T) {
	t.Parallel()

	talks := schema.Relation{Name: "talks_to", Kind: schema.ManyToMany, To: "app.Team"}
	games := schema.Relation{Name: "games", Kind: schema.ManyToMany, To: "app.Event", Through: "plays", BackwardKey: "player", ForwardKey: "game"}
	g, err := validator.Resolve([]*schema.Model{
		model("Event", nil),
		model("Team", nil, talks, games),
	})
	require.NoError(t, err)

	team := g.Models[1]
	require.Len(t, team.M2M, 2)

	assert.Equal(t, "team_team", validator.JoinTableName(team, team.M2M[0]))
	backward, forward := validator.JoinKeys(team, team.M2M[0])
	assert.Equal(t, "team_rel_id", backward)
	assert.Equal(t, "team_id", forward)

	assert.Equal(t, "plays", validator.JoinTableName(team, team.M2M[1]))
	backward, forward = validator.JoinKeys(team, team.M2M[1])
	assert.Equal(t, "player", backward)
	assert.Equal(t, "game", forward)
	assert.Equal(t, "id", team.M2M[1].TargetColumn)
}
