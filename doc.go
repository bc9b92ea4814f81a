// Package teaoverlay lets imperative code push visual content over a Bubble
// Tea view without threading it through the model's top-down data flow.
//
// A Registry keeps the ordered overlay list and signals subscribers after
// every mutation; a Host subscribes on Activate, mirrors the list into the
// program via RefreshMsg, and renders it on View. Composite and
// CompositeAnchor paint the rendered stack onto a base frame. Programs with
// a single overlay stack can use the package-level Default registry and the
// forwarding funcs (Push, PushWith, Dismiss, ...) directly.
package teaoverlay
