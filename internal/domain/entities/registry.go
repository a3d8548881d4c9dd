package entities

// Registry is the ordered list of known relationship definitions.
// Order matters: aliases of earlier definitions win when parsing.
type Registry []*RelationshipDefinition

// AliasAmbiguity describes two aliases of a definition that share the same
// lookup criteria. Only First is ever returned by lookups.
type AliasAmbiguity struct {
	Definition *RelationshipDefinition
	First      *RelationshipAlias
	Shadowed   *RelationshipAlias
}

// DefaultRegistry returns the built-in definitions.
// A new Registry is returned on each call so callers can't alter each other's copy.
func DefaultRegistry() Registry {
	return Registry{
		{
			Name:            "parent/enfant de",
			PersonLeftRepr:  "parent de",
			PersonRightRepr: "enfant de",
			Directional:     true,
			Aliases: []*RelationshipAlias{
				{Name: "père de", LeftPersonSex: Male},
				{Name: "mère de", LeftPersonSex: Female},
				{Name: "parent de"},
				{Name: "fils de", LeftPersonSex: Male, Reverse: true},
				{Name: "fille de", LeftPersonSex: Female, Reverse: true},
				{Name: "enfant de", Reverse: true},
			},
		},
		{
			Name:           "frère/sœur de",
			PersonLeftRepr: "frère/sœur de",
			Aliases: []*RelationshipAlias{
				{Name: "frère de", LeftPersonSex: Male},
				{Name: "sœur de", LeftPersonSex: Female},
			},
		},
		{
			Name:           "ami/amie de",
			PersonLeftRepr: "ami(e) de",
			Aliases: []*RelationshipAlias{
				{Name: "ami de", LeftPersonSex: Male},
				{Name: "amie de", LeftPersonSex: Female},
			},
		},
		{
			Name:           "conjoint de",
			PersonLeftRepr: "conjoint de",
			Aliases: []*RelationshipAlias{
				{Name: "mari de", LeftPersonSex: Male},
				{Name: "femme de", LeftPersonSex: Female},
				{Name: "conjoint de"},
			},
		},
	}
}

// Find returns the definition with the given name, or nil.
func (r Registry) Find(name string) *RelationshipDefinition {
	for _, d := range r {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Names returns the definition names in registry order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, d := range r {
		names[i] = d.Name
	}
	return names
}

// Ambiguities lists, for each definition, the aliases that can never be
// found by FindAlias because an earlier alias has the same criteria.
func (r Registry) Ambiguities() []AliasAmbiguity {
	var res []AliasAmbiguity
	for _, d := range r {
		for i, alias := range d.Aliases {
			first := d.FindAlias(alias.Reverse, alias.LeftPersonSex)
			if first != nil && first != alias {
				res = append(res, AliasAmbiguity{Definition: d, First: first, Shadowed: d.Aliases[i]})
			}
		}
	}
	return res
}
