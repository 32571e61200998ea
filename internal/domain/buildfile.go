package domain

// BuildDescription is written next to the sources in integrated mode. It
// pulls in the ROOT externals the library links against and exports the
// package library.
const BuildDescription = `<use name="root"/>
<use name="rootmath"/>
<use name="roottreeplayer"/>
<export>
  <lib name="1"/>
</export>
`
