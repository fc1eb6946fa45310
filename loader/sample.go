package loader

// SampleSchema is the starter file written by `ddlgen init`.
const SampleSchema = `# ddlgen schema file
app: models
naming: lower

models:
  - name: Tournament
    comment: Tournaments we host
    fields:
      - name: tid
        type: smallint
        pk: true
      - name: name
        type: varchar
        max_length: 100
        index: true
        comment: Tournament name
      - name: created
        type: datetime
        auto_now_add: true

  - name: Team
    fields:
      - name: name
        type: varchar
        max_length: 50
        pk: true
      - name: founded
        type: date
        nullable: true

  - name: Event
    fields:
      - name: id
        type: bigint
        pk: true
      - name: name
        type: text
      - name: prize
        type: decimal
        max_digits: 10
        decimal_places: 2
        nullable: true
      - name: public
        type: bool
        default: true
    relations:
      - name: tournament
        kind: fk
        to: models.Tournament
        on_delete: CASCADE
      - name: participants
        kind: m2m
        to: models.Team
        through: event_team
    unique_together:
      - [name, tournament]
`
