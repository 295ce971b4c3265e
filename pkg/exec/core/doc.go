// Package core contains execution scaffolding shared by the runners:
// context-carried options (worker execution cap, lifecycle logger) and
// slice/channel feed helpers. It defines no runner logic itself.
package core
