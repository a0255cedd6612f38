// Package common contains the typed request schemas shared between the web layer and its tests.
package common
