/*
Package provisioning decides which extra locations a module loader adds and
which discovered locations it rejects, driven by a small directive file.

Directive grammar, one per line, surrounding whitespace ignored:

	# comment
	+/opt/libs/a.jar          add a literal path
	org.example:widget:1.0    add (no marker), resolved by the Resolver
	-widget                   reject candidates whose file name starts with the pattern

Basic flow:
  - create a Configurer (`New`) with a Resolver and filesystem
  - load a source (`Load` / `LoadReader`); the call never fails, see Result.Err
  - query `AdditionalLocations` and `ShouldAccept` from any goroutine

Exclusion text is kept verbatim in Directive.Text. ExclusionStripped, the
default, matches on the text after "-"; ExclusionVerbatim matches on the full
text including the marker.
*/
package provisioning
