// Package viz is the terminal host for the particle field.
//
// It runs a Bubble Tea program with two screens that follow the scene
// lifecycle: a Play/Quit menu and a braille view of the field. The mouse
// drives the cursor modes the same way the window host does:
//
//	left drag     attract
//	right click   repel (one frame per click)
//	middle drag   orbit
//
// Keyboard fallback in the field view: arrows or hjkl move the cursor, a and
// o toggle attract and orbit, r repels once, esc returns to the menu.
package viz
