package types

// RoutingExtension carries the self-directed routing fields an agent stamps
// onto its turn. Recipient is the agent that should speak next; nil means no
// recipient was nominated and the conversation is over. Candidates is the
// pool of agents eligible for recipient election on the following turn; a nil
// slice means "not suggested" and the next speaker falls back to its static
// neighbors, while an empty non-nil slice means "explicitly none".
type RoutingExtension struct {
	Recipient  *string  `json:"recipient"`
	Candidates []string `json:"candidates,omitempty"`
}

// HasRecipient reports whether a next speaker was nominated.
func (r *RoutingExtension) HasRecipient() bool {
	return r != nil && r.Recipient != nil
}

// RecipientName returns the nominated recipient, or "" when there is none.
func (r *RoutingExtension) RecipientName() string {
	if r == nil || r.Recipient == nil {
		return ""
	}
	return *r.Recipient
}

// TurnContext is the per-turn metadata bag attached 1:1 to a Message. The
// reply backend may populate Metadata with arbitrary values; the routing layer
// owns the Routing extension. Routing fields always win over backend metadata.
type TurnContext struct {
	Metadata map[string]any    `json:"metadata,omitempty"`
	Routing  *RoutingExtension `json:"routing,omitempty"`
}

// MergeMetadata merges backend-supplied metadata into the context without
// touching the routing extension. Existing keys are not overwritten.
func (c *TurnContext) MergeMetadata(partial map[string]any) {
	if len(partial) == 0 {
		return
	}
	if c.Metadata == nil {
		c.Metadata = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		if _, ok := c.Metadata[k]; !ok {
			c.Metadata[k] = v
		}
	}
}

// CandidateNames returns the suggested candidate pool for display purposes.
// An absent routing extension or nil candidate list yields an empty slice.
func (c *TurnContext) CandidateNames() []string {
	if c == nil || c.Routing == nil || c.Routing.Candidates == nil {
		return []string{}
	}
	out := make([]string, len(c.Routing.Candidates))
	copy(out, c.Routing.Candidates)
	return out
}
