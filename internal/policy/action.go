package policy

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

const (
	// CodeNamespace is the IRI prefix of the IDS code vocabulary.
	CodeNamespace = "https://w3id.org/idsa/code/"
	codePrefix    = "idsc:"
)

// Action is an entry of the IDS action vocabulary.
type Action string

const (
	ActionUse             Action = "USE"
	ActionRead            Action = "READ"
	ActionModify          Action = "MODIFY"
	ActionDelete          Action = "DELETE"
	ActionDistribute      Action = "DISTRIBUTE"
	ActionLog             Action = "LOG"
	ActionNotify          Action = "NOTIFY"
	ActionAnonymize       Action = "ANONYMIZE"
	ActionAggregate       Action = "AGGREGATE"
	ActionCompensate      Action = "COMPENSATE"
	ActionEncrypt         Action = "ENCRYPT"
	ActionPrint           Action = "PRINT"
	ActionDisplay         Action = "DISPLAY"
	ActionReadAndDelete   Action = "READ_AND_DELETE"
	ActionGrantUse        Action = "GRANT_USE"
	ActionIncrementCount  Action = "INCREMENT_COUNTER"
	ActionNextPolicy      Action = "NEXT_POLICY"
	ActionAcceptTracking  Action = "ACCEPT_TRACKING"
	ActionEnsureSecurity  Action = "ENSURE_SECURITY"
	ActionInform          Action = "INFORM"
	ActionShare           Action = "SHARE"
	ActionTranslate       Action = "TRANSLATE"
	ActionInstall         Action = "INSTALL"
	ActionReplace         Action = "REPLACE"
	ActionUnrestrictedUse Action = "UNRESTRICTED_USE"
	ActionWrite           Action = "WRITE"
)

var vocabulary = map[Action]struct{}{
	ActionUse: {}, ActionRead: {}, ActionModify: {}, ActionDelete: {}, ActionDistribute: {},
	ActionLog: {}, ActionNotify: {}, ActionAnonymize: {}, ActionAggregate: {}, ActionCompensate: {},
	ActionEncrypt: {}, ActionPrint: {}, ActionDisplay: {}, ActionReadAndDelete: {}, ActionGrantUse: {},
	ActionIncrementCount: {}, ActionNextPolicy: {}, ActionAcceptTracking: {}, ActionEnsureSecurity: {},
	ActionInform: {}, ActionShare: {}, ActionTranslate: {}, ActionInstall: {}, ActionReplace: {},
	ActionUnrestrictedUse: {}, ActionWrite: {},
}

// ParseAction maps "idsc:USE", "https://w3id.org/idsa/code/USE" or "USE" to ActionUse.
func ParseAction(token string) (Action, error) {
	name := strings.TrimSpace(token)
	name = strings.TrimPrefix(name, codePrefix)
	name = strings.TrimPrefix(name, CodeNamespace)

	a := Action(strings.ToUpper(name))
	if _, ok := vocabulary[a]; !ok {
		return "", fmt.Errorf("unknown action %q: %w", token, domain.ErrInvalidArgument)
	}
	return a, nil
}

// CompactIRI returns the prefixed form used in JSON-LD output, e.g. "idsc:USE".
func (a Action) CompactIRI() string {
	return codePrefix + string(a)
}
