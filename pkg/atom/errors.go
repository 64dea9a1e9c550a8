package atom

import "github.com/elision-go/elision/internal/errs"

// illegalPropsErr and illegalPropsErrMulti adapt this package's atoms to
// internal/errs' location-free error taxonomy; atoms carry their own *Loc
// but errs.Loc is a separate (identical-shaped) type to keep errs leaf-level
// (see DESIGN.md).
func toErrsLoc(l *Loc) *errs.Loc {
	if l == nil {
		return nil
	}
	return &errs.Loc{File: l.File, Line: l.Line, Col: l.Col}
}

func illegalPropsErr(field, reason string) error {
	return errs.NewIllegalPropertiesSpecificationError(nil, field+": "+reason)
}

func illegalPropsErrMulti(reasons []string) error {
	return errs.NewIllegalPropertiesSpecificationError(nil, reasons...)
}
