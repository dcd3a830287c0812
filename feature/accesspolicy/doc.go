// Package accesspolicy ensures the statements and creation hooks of a
// viewset's access policy. Access policies exist for every viewset and can
// only be patched, so present is the only state.
package accesspolicy
