package ir

// ToPlain projects a node onto plain Go values: nil, bool, float64,
// string, []any and map[string]any. Elements become maps with the keys
// "tag", "metadata", "attributes", "body" and "extend" (data elements) or
// "text" and "textMarker" (text elements); absent sections are left out.
// An extend block becomes {"order": [...], "children": {...}}.
// Comments project to nil and are dropped from lists.
func ToPlain(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case NullType, CommentType:
		return nil
	case BoolType:
		return y.Bool
	case NumberType:
		return y.Number
	case StringType:
		return y.String
	case ListType:
		res := make([]any, 0, len(y.Values))
		for _, v := range y.Values {
			if v.Type == CommentType {
				continue
			}
			res = append(res, ToPlain(v))
		}
		return res
	case MapType:
		res := make(map[string]any, len(y.Keys))
		for i, k := range y.Keys {
			res[k] = ToPlain(y.Values[i])
		}
		return res
	case ExtendType:
		order := make([]any, len(y.Keys))
		children := make(map[string]any, len(y.Keys))
		for i, k := range y.Keys {
			order[i] = k
			children[k] = ToPlain(y.Values[i])
		}
		return map[string]any{"order": order, "children": children}
	case ElementType, TextType:
		meta := y.Metadata
		if meta == nil {
			meta = NewMap()
		}
		res := map[string]any{
			"tag":      y.Tag,
			"metadata": ToPlain(meta),
		}
		if y.Attributes != nil {
			res["attributes"] = ToPlain(y.Attributes)
		}
		if y.Type == TextType {
			res["text"] = y.Text
			res["textMarker"] = y.Marker
			return res
		}
		if y.Body != nil {
			res["body"] = ToPlain(y.Body)
		}
		if y.Extend != nil {
			res["extend"] = ToPlain(y.Extend)
		}
		return res
	default:
		return nil
	}
}

// DocumentToPlain projects the elements of d, dropping comments.
func DocumentToPlain(d *Document) []any {
	res := make([]any, 0, len(d.Nodes))
	for _, n := range d.Elements() {
		res = append(res, ToPlain(n))
	}
	return res
}
