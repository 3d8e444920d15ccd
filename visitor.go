package oifits

// Visitor receives each concrete table kind
type Visitor interface {
	VisitTarget(t *OITarget)
	VisitArray(a *OIArray)
	VisitWavelength(w *OIWavelength)
	VisitVis(v *OIVis)
	VisitVis2(v *OIVis2)
	VisitT3(t *OIT3)
}

// Accept dispatches t to the method of v matching its kind
func Accept(t OITable, v Visitor) {
	switch t.Kind() {
	case KindTarget:
		v.VisitTarget(t.(*OITarget))
	case KindArray:
		v.VisitArray(t.(*OIArray))
	case KindWavelength:
		v.VisitWavelength(t.(*OIWavelength))
	case KindVis:
		v.VisitVis(t.(*OIVis))
	case KindVis2:
		v.VisitVis2(t.(*OIVis2))
	case KindT3:
		v.VisitT3(t.(*OIT3))
	}
}

// checkVisitor runs the rules of every table it visits
type checkVisitor struct {
	checker *Checker
}

func (c checkVisitor) VisitTarget(t *OITarget)         { t.CheckSyntax(c.checker) }
func (c checkVisitor) VisitArray(a *OIArray)           { a.CheckSyntax(c.checker) }
func (c checkVisitor) VisitWavelength(w *OIWavelength) { w.CheckSyntax(c.checker) }
func (c checkVisitor) VisitVis(v *OIVis)               { v.CheckSyntax(c.checker) }
func (c checkVisitor) VisitVis2(v *OIVis2)             { v.CheckSyntax(c.checker) }
func (c checkVisitor) VisitT3(t *OIT3)                 { t.CheckSyntax(c.checker) }
