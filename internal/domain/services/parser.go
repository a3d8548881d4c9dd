package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
)

// LinkRequest is a request to link two persons, such as "John père de Emma".
type LinkRequest struct {
	LeftPersonPattern  string
	RightPersonPattern string
	Definition         *entities.RelationshipDefinition
	Alias              *entities.RelationshipAlias
}

// SearchRequest is either a plain name search, or a search through a
// relationship phrase such as "fille de John".
type SearchRequest struct {
	Pattern    string
	Definition *entities.RelationshipDefinition // nil for a plain search
	Alias      *entities.RelationshipAlias      // nil for a plain search
}

// IsRelationshipSearch reports whether the request goes through a relationship phrase.
func (r *SearchRequest) IsRelationshipSearch() bool {
	return r.Definition != nil
}

// Parser turns free text into link and search requests using the aliases of a registry.
type Parser struct {
	registry entities.Registry
	logger   *zap.Logger
}

// NewParser creates a Parser over registry. Aliases which can never be
// found because an earlier alias has the same criteria are logged.
func NewParser(registry entities.Registry, logger *zap.Logger) *Parser {
	for _, a := range registry.Ambiguities() {
		logger.Warn("ambiguous relationship alias, first one wins",
			zap.String("definition", a.Definition.Name),
			zap.String("alias", a.First.Name),
			zap.String("shadowed", a.Shadowed.Name),
		)
	}
	return &Parser{
		registry: registry,
		logger:   logger,
	}
}

// aliasMatch locates an alias phrase within the parsed text.
type aliasMatch struct {
	definition *entities.RelationshipDefinition
	alias      *entities.RelationshipAlias
	start, end int
}

// findAlias returns the first alias found in text, definitions and aliases
// being tried in registry order.
func (p *Parser) findAlias(text string) (aliasMatch, bool) {
	for _, definition := range p.registry {
		for _, alias := range definition.Aliases {
			start, end := indexFold(text, alias.Name)
			if start < 0 {
				continue
			}
			return aliasMatch{definition: definition, alias: alias, start: start, end: end}, true
		}
	}
	return aliasMatch{}, false
}

// ParseLinkRequest parses "<left pattern> <alias> <right pattern>".
func (p *Parser) ParseLinkRequest(text string) (*LinkRequest, bool) {
	m, ok := p.findAlias(text)
	if !ok {
		p.logger.Info("no relationship found", zap.String("text", text))
		return nil, false
	}

	left := strings.TrimSpace(text[:m.start])
	right := strings.TrimSpace(text[m.end:])
	if left == "" || right == "" {
		p.logger.Info("wrong number of person patterns",
			zap.String("text", text),
			zap.String("alias", m.alias.Name),
		)
		return nil, false
	}

	p.logger.Debug("link request parsed",
		zap.String("left", left),
		zap.String("alias", m.alias.Name),
		zap.String("right", right),
	)
	return &LinkRequest{
		LeftPersonPattern:  left,
		RightPersonPattern: right,
		Definition:         m.definition,
		Alias:              m.alias,
	}, true
}

// ParseSearchRequest parses either a plain pattern or "<alias> <pattern>".
func (p *Parser) ParseSearchRequest(text string) (*SearchRequest, bool) {
	text = strings.TrimSpace(text)
	m, ok := p.findAlias(text)
	if !ok {
		if text == "" {
			p.logger.Info("missing search pattern")
			return nil, false
		}
		return &SearchRequest{Pattern: text}, true
	}

	if m.start > 0 {
		p.logger.Info("text before relationship is not supported in a search",
			zap.String("text", text),
			zap.String("alias", m.alias.Name),
		)
		return nil, false
	}
	pattern := strings.TrimSpace(text[m.end:])
	if pattern == "" {
		p.logger.Info("missing person pattern after relationship",
			zap.String("alias", m.alias.Name),
		)
		return nil, false
	}

	return &SearchRequest{
		Pattern:    pattern,
		Definition: m.definition,
		Alias:      m.alias,
	}, true
}
